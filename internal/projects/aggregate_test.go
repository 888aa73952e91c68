package projects

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fuongz/portfolio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func repo(name string, pushedAt time.Time, homepage *string) models.RepoSummary {
	return models.RepoSummary{
		Name:            name,
		Description:     strPtr(name + " description"),
		Homepage:        homepage,
		PushedAt:        pushedAt,
		StargazersCount: 7,
		Language:        strPtr("Go"),
		License:         &models.License{SPDXID: strPtr("MIT")},
		HTMLURL:         "https://github.com/fuongz/" + name,
	}
}

func fixtureRepos() []models.RepoSummary {
	return []models.RepoSummary{
		repo("autofill-forms", now.Add(-72*time.Hour), strPtr("https://chromewebstore.google.com/detail/autofill")),
		repo("dotfiles", now.Add(-time.Hour), nil),
		repo("vscode-coin-watcher", now.Add(-30*24*time.Hour), strPtr("https://marketplace.visualstudio.com/items")),
		repo("newtab", now.Add(-24*time.Hour), strPtr("https://pypi.org/project/newtab")),
	}
}

func TestAggregate(t *testing.T) {
	allowList := []string{"autofill-forms", "newtab", "vscode-coin-watcher"}

	projects, missing := Aggregate(fixtureRepos(), allowList, now)

	assert.Empty(t, missing)
	require.Len(t, projects, 3)
	assert.Equal(t, "newtab", projects[0].Name)
	assert.Equal(t, "autofill-forms", projects[1].Name)
	assert.Equal(t, "vscode-coin-watcher", projects[2].Name)

	p := projects[1]
	assert.Equal(t, 7, p.StargazersCount)
	assert.Equal(t, "3 days ago", p.LastCommit)
	assert.Equal(t, now.Add(-72*time.Hour).Unix(), p.UpdatedAt)
	assert.Equal(t, "autofill-forms description", *p.Description)
	assert.Equal(t, "Go", *p.Language)
	assert.Equal(t, "MIT", *p.License)
	assert.Equal(t, "https://github.com/fuongz/autofill-forms", p.HTMLURL)
	assert.Equal(t, models.ProjectTypeChromeExtension, p.Type)
}

func TestAggregateTypeMatchesClassifier(t *testing.T) {
	repos := fixtureRepos()
	names := make([]string, 0, len(repos))
	for _, r := range repos {
		names = append(names, r.Name)
	}

	projects, _ := Aggregate(repos, names, now)
	require.Len(t, projects, len(repos))

	for _, p := range projects {
		r, ok := findRepo(repos, p.Name)
		require.True(t, ok)
		assert.Equal(t, Classify(r.HomepageURL()), p.Type, p.Name)
	}
}

func TestAggregateSortedByUpdatedAt(t *testing.T) {
	repos := fixtureRepos()
	projects, _ := Aggregate(repos, []string{"vscode-coin-watcher", "dotfiles", "autofill-forms", "newtab"}, now)

	require.Len(t, projects, 4)
	for i := 1; i < len(projects); i++ {
		assert.GreaterOrEqual(t, projects[i-1].UpdatedAt, projects[i].UpdatedAt)
	}
}

func TestAggregateStableTies(t *testing.T) {
	pushed := now.Add(-time.Hour)
	repos := []models.RepoSummary{
		repo("a", pushed, nil),
		repo("b", pushed, nil),
		repo("c", pushed, nil),
	}

	projects, _ := Aggregate(repos, []string{"c", "a", "b"}, now)

	require.Len(t, projects, 3)
	assert.Equal(t, "c", projects[0].Name)
	assert.Equal(t, "a", projects[1].Name)
	assert.Equal(t, "b", projects[2].Name)
}

func TestAggregateSkipsMissingNames(t *testing.T) {
	projects, missing := Aggregate(fixtureRepos(), []string{"newtab", "auto-switch-providers", "autofill-forms"}, now)

	assert.Equal(t, []string{"auto-switch-providers"}, missing)
	require.Len(t, projects, 2)
	for _, p := range projects {
		assert.NotEqual(t, "auto-switch-providers", p.Name)
	}
	assert.Equal(t, "newtab", projects[0].Name)
	assert.Equal(t, "autofill-forms", projects[1].Name)
}

func TestAggregateNoRepos(t *testing.T) {
	projects, missing := Aggregate(nil, []string{"newtab"}, now)

	assert.NotNil(t, projects)
	assert.Empty(t, projects)
	assert.Empty(t, missing)
}

func TestAggregateEmptyFetchReportsMissing(t *testing.T) {
	projects, missing := Aggregate([]models.RepoSummary{}, []string{"newtab", "autofill-forms", "newtab"}, now)

	assert.NotNil(t, projects)
	assert.Empty(t, projects)
	assert.Equal(t, []string{"newtab", "autofill-forms"}, missing)
}

func TestAggregateFirstMatchAndDuplicates(t *testing.T) {
	first := repo("newtab", now.Add(-time.Hour), nil)
	second := repo("newtab", now.Add(-2*time.Hour), nil)
	second.StargazersCount = 99

	projects, _ := Aggregate([]models.RepoSummary{first, second}, []string{"newtab", "newtab"}, now)

	require.Len(t, projects, 1)
	assert.Equal(t, 7, projects[0].StargazersCount)
}

func TestToProjectNullableFields(t *testing.T) {
	r := models.RepoSummary{
		Name:     "bare",
		PushedAt: now.Add(-time.Hour),
		HTMLURL:  "https://github.com/fuongz/bare",
	}

	p := ToProject(&r, now)
	assert.Equal(t, "1 hour ago", p.LastCommit)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "bare",
		"stargazersCount": 0,
		"lastCommit": "1 hour ago",
		"updatedAt": `+jsonInt(now.Add(-time.Hour).Unix())+`,
		"description": null,
		"homepage": null,
		"language": null,
		"license": null,
		"htmlUrl": "https://github.com/fuongz/bare",
		"type": null
	}`, string(data))
}

func TestSelectMatching(t *testing.T) {
	repos := []models.RepoSummary{
		repo("nextjs-template", now.Add(-time.Hour), nil),
		repo("phake-cli", now.Add(-time.Minute), nil),
		repo("go-template", now.Add(-time.Minute), nil),
	}

	projects := SelectMatching(repos, "-template", now)
	require.Len(t, projects, 2)
	assert.Equal(t, "nextjs-template", projects[0].Name)
	assert.Equal(t, "go-template", projects[1].Name)

	assert.Empty(t, SelectMatching(repos, "", now))
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
