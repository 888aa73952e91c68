package projects

import (
	"context"
	"sync"
	"time"

	"github.com/fuongz/portfolio/internal/github"
	"github.com/fuongz/portfolio/internal/models"
	"github.com/fuongz/portfolio/internal/utils"
	"golang.org/x/sync/singleflight"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "idle"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Fetcher lists repositories for an account. *github.Client satisfies it.
type Fetcher interface {
	ListRepos(ctx context.Context, owner github.Owner) ([]models.RepoSummary, []github.RecordError, error)
}

// Selection decides which fetched repositories are shown. A non-empty AllowList wins
// over Contains.
type Selection struct {
	AllowList []string
	Contains  string
}

func (s Selection) apply(repos []models.RepoSummary, now time.Time) ([]models.Project, []string) {
	if len(s.AllowList) > 0 {
		return Aggregate(repos, s.AllowList, now)
	}
	return SelectMatching(repos, s.Contains, now), nil
}

// Snapshot is the outcome of the latest load. Projects is never nil.
type Snapshot struct {
	State     State            `json:"state"`
	Projects  []models.Project `json:"projects"`
	Missing   []string         `json:"missing,omitempty"`
	Error     string           `json:"error,omitempty"`
	FetchedAt time.Time        `json:"fetchedAt"`
}

// Loader runs the fetch-and-aggregate task. Overlapping Load calls share one
// outbound request.
type Loader struct {
	fetcher Fetcher
	owner   github.Owner
	timeout time.Duration
	logger  *utils.Logger
	now     func() time.Time

	group singleflight.Group

	mu        sync.RWMutex
	selection Selection
	snapshot  Snapshot
}

func NewLoader(fetcher Fetcher, owner github.Owner, selection Selection, timeout time.Duration, logger *utils.Logger) *Loader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Loader{
		fetcher:   fetcher,
		owner:     owner,
		timeout:   timeout,
		logger:    logger,
		now:       time.Now,
		selection: selection,
		snapshot:  Snapshot{State: StateIdle, Projects: []models.Project{}},
	}
}

// Load fetches and aggregates, joining a fetch already in flight. If ctx ends first the
// current snapshot is returned with ctx.Err(); the shared fetch keeps running.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	detached := context.WithoutCancel(ctx)
	ch := l.group.DoChan("load", func() (interface{}, error) {
		return l.run(detached), nil
	})

	select {
	case <-ctx.Done():
		return l.Snapshot(), ctx.Err()
	case res := <-ch:
		return res.Val.(Snapshot), nil
	}
}

// Snapshot returns the latest known state without fetching.
func (l *Loader) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snapshot
}

// SetSelection replaces the allow-list and pattern used from the next load on.
func (l *Loader) SetSelection(selection Selection) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selection = selection
}

func (l *Loader) Owner() github.Owner {
	return l.owner
}

func (l *Loader) run(ctx context.Context) Snapshot {
	l.mu.Lock()
	l.snapshot.State = StateLoading
	selection := l.selection
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	l.logger.LogDebug("Fetching repositories for %s", l.owner)
	repos, rejected, err := l.fetcher.ListRepos(ctx, l.owner)
	for _, r := range rejected {
		l.logger.LogError("Rejected repository record from %s: %v", l.owner, r)
	}

	now := l.now()
	var snapshot Snapshot
	if err != nil {
		l.logger.LogError("Failed to fetch repositories for %s: %v", l.owner, err)
		snapshot = Snapshot{
			State:     StateFailure,
			Projects:  []models.Project{},
			Error:     err.Error(),
			FetchedAt: now,
		}
	} else {
		projects, missing := selection.apply(repos, now)
		for _, name := range missing {
			l.logger.LogError("Configured project %q not found for %s, skipping", name, l.owner)
		}
		snapshot = Snapshot{
			State:     StateSuccess,
			Projects:  projects,
			Missing:   missing,
			FetchedAt: now,
		}
		l.logger.LogInfo("Loaded %d projects from %d repositories for %s", len(projects), len(repos), l.owner)
	}

	l.mu.Lock()
	l.snapshot = snapshot
	l.mu.Unlock()

	return snapshot
}
