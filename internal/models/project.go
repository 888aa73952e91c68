package models

import "encoding/json"

// ProjectType is derived from a project's homepage. The zero value means unclassified.
type ProjectType string

const (
	ProjectTypeNone            ProjectType = ""
	ProjectTypeChromeExtension ProjectType = "chrome-extension"
	ProjectTypePyPI            ProjectType = "pypi"
)

// MarshalJSON encodes an unclassified type as null.
func (t ProjectType) MarshalJSON() ([]byte, error) {
	if t == ProjectTypeNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}

// Project is the render-ready view of a repository.
type Project struct {
	Name            string      `json:"name"`
	StargazersCount int         `json:"stargazersCount"`
	LastCommit      string      `json:"lastCommit"`
	UpdatedAt       int64       `json:"updatedAt"`
	Description     *string     `json:"description"`
	Homepage        *string     `json:"homepage"`
	Language        *string     `json:"language"`
	License         *string     `json:"license"`
	HTMLURL         string      `json:"htmlUrl"`
	Type            ProjectType `json:"type"`
}
