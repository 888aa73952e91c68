package projects

import (
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fuongz/portfolio/internal/models"
)

// Aggregate builds view models for every allow-listed name found in repos, most recently
// pushed first. Names with no matching repository are skipped and returned in missing.
// A name listed twice produces one entry. A nil repos means nothing was fetched and
// reports no misses; an empty fetch reports every name as missing.
func Aggregate(repos []models.RepoSummary, allowList []string, now time.Time) (projects []models.Project, missing []string) {
	projects = make([]models.Project, 0, len(allowList))
	if repos == nil {
		return projects, nil
	}

	seen := make(map[string]struct{}, len(allowList))
	for _, name := range allowList {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		repo, ok := findRepo(repos, name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		projects = append(projects, ToProject(repo, now))
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].UpdatedAt > projects[j].UpdatedAt
	})

	return projects, missing
}

// SelectMatching maps every repository whose name contains substr, keeping fetch order.
func SelectMatching(repos []models.RepoSummary, substr string, now time.Time) []models.Project {
	projects := make([]models.Project, 0)
	if substr == "" {
		return projects
	}
	for i := range repos {
		if strings.Contains(repos[i].Name, substr) {
			projects = append(projects, ToProject(&repos[i], now))
		}
	}
	return projects
}

// ToProject maps one repository record into its view model.
func ToProject(repo *models.RepoSummary, now time.Time) models.Project {
	return models.Project{
		Name:            repo.Name,
		StargazersCount: repo.StargazersCount,
		LastCommit:      humanize.RelTime(repo.PushedAt, now, "ago", "from now"),
		UpdatedAt:       repo.PushedAt.Unix(),
		Description:     repo.Description,
		Homepage:        repo.Homepage,
		Language:        repo.Language,
		License:         repo.LicenseID(),
		HTMLURL:         repo.HTMLURL,
		Type:            Classify(repo.HomepageURL()),
	}
}

func findRepo(repos []models.RepoSummary, name string) (*models.RepoSummary, bool) {
	for i := range repos {
		if repos[i].Name == name {
			return &repos[i], true
		}
	}
	return nil, false
}
