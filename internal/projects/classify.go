package projects

import (
	"strings"

	"github.com/fuongz/portfolio/internal/models"
)

var homepageRules = []struct {
	prefix string
	kind   models.ProjectType
}{
	{"https://chromewebstore.google.com", models.ProjectTypeChromeExtension},
	{"https://pypi.org", models.ProjectTypePyPI},
}

// Classify derives a project type from its homepage. Prefixes are matched exactly and
// case-sensitively, first rule wins; anything unrecognized is ProjectTypeNone.
func Classify(homepage string) models.ProjectType {
	for _, rule := range homepageRules {
		if strings.HasPrefix(homepage, rule.prefix) {
			return rule.kind
		}
	}
	return models.ProjectTypeNone
}
