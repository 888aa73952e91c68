package sitemapcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fuongz/portfolio/internal/models"
	"github.com/fuongz/portfolio/internal/sitemap"
	"github.com/fuongz/portfolio/internal/utils"
	"github.com/gocolly/colly/v2"
)

const indexKey = "index"

// Result is the outcome of visiting one sitemap entry.
type Result struct {
	URL    string
	Status int
	Title  string
	Err    error
}

func (r Result) OK() bool {
	return r.Err == nil && r.Status >= 200 && r.Status < 300
}

type Checker struct {
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
	logger     *utils.Logger
}

func NewChecker(userAgent string, timeout time.Duration, logger *utils.Logger) *Checker {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Checker{
		userAgent:  userAgent,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Check fetches the sitemap at sitemapURL and visits every entry in order.
func (c *Checker) Check(ctx context.Context, sitemapURL string) ([]Result, error) {
	doc, err := c.fetchSitemap(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	c.logger.LogInfo("Total URLs found: %d", len(doc.URLs))

	results := make([]Result, len(doc.URLs))

	collector := colly.NewCollector(
		colly.UserAgent(c.userAgent),
		colly.AllowURLRevisit(),
	)
	collector.SetRequestTimeout(c.timeout)

	collector.OnResponse(func(r *colly.Response) {
		if i, ok := r.Ctx.GetAny(indexKey).(int); ok {
			results[i].Status = r.StatusCode
		}
	})

	collector.OnHTML("html", func(e *colly.HTMLElement) {
		if i, ok := e.Request.Ctx.GetAny(indexKey).(int); ok {
			results[i].Title = pageTitle(e.DOM)
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		if i, ok := r.Ctx.GetAny(indexKey).(int); ok {
			results[i].Status = r.StatusCode
			results[i].Err = err
		}
	})

	for i, entry := range doc.URLs {
		results[i].URL = entry.Loc
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		c.logger.LogDebug("Processing URL %d/%d: %s", i+1, len(doc.URLs), entry.Loc)
		reqCtx := colly.NewContext()
		reqCtx.Put(indexKey, i)
		if err := collector.Request(http.MethodGet, entry.Loc, nil, reqCtx, nil); err != nil && results[i].Err == nil {
			results[i].Err = err
		}
	}

	return results, nil
}

func (c *Checker) fetchSitemap(ctx context.Context, sitemapURL string) (*models.Sitemap, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching sitemap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error fetching sitemap: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading sitemap: %w", err)
	}

	return sitemap.Parse(body)
}

func pageTitle(doc *goquery.Selection) string {
	title := strings.TrimSpace(doc.Find("head title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	return title
}
