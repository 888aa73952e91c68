package models

import "time"

// RepoSummary is one repository record as returned by the repo-hosting API.
type RepoSummary struct {
	Name            string    `json:"name" validate:"required"`
	Description     *string   `json:"description"`
	Homepage        *string   `json:"homepage"`
	PushedAt        time.Time `json:"pushed_at" validate:"required"`
	StargazersCount int       `json:"stargazers_count" validate:"gte=0"`
	Language        *string   `json:"language"`
	License         *License  `json:"license"`
	HTMLURL         string    `json:"html_url" validate:"required,url"`
}

type License struct {
	SPDXID *string `json:"spdx_id"`
}

// HomepageURL returns the homepage or "" when the API sent null.
func (r *RepoSummary) HomepageURL() string {
	if r.Homepage == nil {
		return ""
	}
	return *r.Homepage
}

// LicenseID returns the SPDX identifier, nil when the repository has no license.
func (r *RepoSummary) LicenseID() *string {
	if r.License == nil {
		return nil
	}
	return r.License.SPDXID
}
