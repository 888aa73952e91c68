package projects

import (
	"testing"

	"github.com/fuongz/portfolio/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		homepage string
		want     models.ProjectType
	}{
		{"https://chromewebstore.google.com/x", models.ProjectTypeChromeExtension},
		{"https://chromewebstore.google.com", models.ProjectTypeChromeExtension},
		{"https://pypi.org/project/x", models.ProjectTypePyPI},
		{"https://example.com", models.ProjectTypeNone},
		{"", models.ProjectTypeNone},
		{"HTTPS://PYPI.ORG/project/x", models.ProjectTypeNone},
		{"http://pypi.org/project/x", models.ProjectTypeNone},
		{" https://pypi.org/project/x", models.ProjectTypeNone},
		{"https://pypi.org.evil.example", models.ProjectTypePyPI},
		{"not a url at all", models.ProjectTypeNone},
	}

	for _, tt := range tests {
		t.Run(tt.homepage, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.homepage))
		})
	}
}
