package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fuongz/portfolio/internal/models"
	"github.com/go-playground/validator/v10"
)

const DefaultBaseURL = "https://api.github.com"

var ErrUnexpectedStatus = errors.New("unexpected status code")

type OwnerKind string

const (
	OwnerUser OwnerKind = "users"
	OwnerOrg  OwnerKind = "orgs"
)

// Owner names an account whose public repositories are listed.
type Owner struct {
	Kind OwnerKind
	Name string
}

func User(name string) Owner { return Owner{Kind: OwnerUser, Name: name} }
func Org(name string) Owner  { return Owner{Kind: OwnerOrg, Name: name} }

func (o Owner) String() string {
	return string(o.Kind) + "/" + o.Name
}

// RecordError reports one repository record that failed decoding or validation.
type RecordError struct {
	Index int
	Name  string
	Err   error
}

func (e RecordError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("record %d (%s): %v", e.Index, e.Name, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e RecordError) Unwrap() error { return e.Err }

type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		validate: validator.New(),
	}
}

// ListRepos fetches the first page of public repositories for owner. Records that fail
// validation are left out of repos and described in rejected.
func (c *Client) ListRepos(ctx context.Context, owner Owner) (repos []models.RepoSummary, rejected []RecordError, err error) {
	endpoint := fmt.Sprintf("%s/%s/%s/repos", c.baseURL, owner.Kind, url.PathEscape(owner.Name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s: %w", owner, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("fetch %s: %w: %d", owner, ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", owner, err)
	}

	repos, rejected, err = c.ParseRepos(body)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", owner, err)
	}
	return repos, rejected, nil
}

// ParseRepos decodes a JSON array of repository records one element at a time, so a
// malformed element costs only itself.
func (c *Client) ParseRepos(body []byte) ([]models.RepoSummary, []RecordError, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, nil, err
	}

	repos := make([]models.RepoSummary, 0, len(raw))
	var rejected []RecordError
	for i, msg := range raw {
		var repo models.RepoSummary
		if err := json.Unmarshal(msg, &repo); err != nil {
			rejected = append(rejected, RecordError{Index: i, Name: peekName(msg), Err: err})
			continue
		}
		if err := c.validate.Struct(&repo); err != nil {
			rejected = append(rejected, RecordError{Index: i, Name: repo.Name, Err: err})
			continue
		}
		repos = append(repos, repo)
	}

	return repos, rejected, nil
}

func peekName(msg json.RawMessage) string {
	var named struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(msg, &named); err != nil {
		return ""
	}
	return named.Name
}
