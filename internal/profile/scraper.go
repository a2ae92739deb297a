// Package profile scrapes public profile pages into a small structured bundle.
package profile

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mitchellh/mapstructure"
	"github.com/spigell/hire-assessor/internal/fetch"
	"go.uber.org/zap"
)

type Repository struct {
	Name string `json:"name" mapstructure:"name"`
	URL  string `json:"url" mapstructure:"url"`
}

// Bundle is the structured result of scraping one profile page.
type Bundle struct {
	Name         string       `json:"name" mapstructure:"name"`
	Bio          string       `json:"bio" mapstructure:"bio"`
	Repositories []Repository `json:"repositories" mapstructure:"repositories"`
}

// Empty returns a bundle with no data and a non-nil repository list.
func Empty() *Bundle {
	return &Bundle{Repositories: []Repository{}}
}

// RepositoryNames returns repository names in page order.
func (b *Bundle) RepositoryNames() []string {
	if b == nil {
		return nil
	}

	names := make([]string, 0, len(b.Repositories))
	for _, r := range b.Repositories {
		names = append(names, r.Name)
	}

	return names
}

type Fetcher interface {
	GetHTML(ctx context.Context, rawURL string) ([]byte, error)
}

type Scraper struct {
	fetcher Fetcher
	schema  Schema
	logger  *zap.Logger
}

// NewScraper builds a scraper for schema; a nil schema means GitHubSchema.
func NewScraper(fetcher Fetcher, schema Schema, logger *zap.Logger) *Scraper {
	if schema == nil {
		schema = GitHubSchema
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scraper{fetcher: fetcher, schema: schema, logger: logger}
}

// Scrape fetches pageURL and applies the schema. A failed fetch or parse
// returns an empty bundle together with the error.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) fetch.Outcome[*Bundle] {
	page, err := s.fetcher.GetHTML(ctx, pageURL)
	if err != nil {
		return fetch.Failed(Empty(), fmt.Errorf("fetch profile page: %w", err))
	}

	bundle, err := Parse(page, pageURL, s.schema)
	if err != nil {
		return fetch.Failed(Empty(), err)
	}

	s.logger.Debug("profile scraped",
		zap.String("url", pageURL),
		zap.Bool("has_name", bundle.Name != ""),
		zap.Bool("has_bio", bundle.Bio != ""),
		zap.Int("repositories", len(bundle.Repositories)),
	)

	return fetch.Succeeded(bundle)
}

// Parse applies schema to an already fetched page. Relative links are
// resolved against the origin of pageURL.
func Parse(page []byte, pageURL string, schema Schema) (*Bundle, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse profile url: %w", err)
	}
	origin := &url.URL{Scheme: base.Scheme, Host: base.Host, Path: "/"}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse profile html: %w", err)
	}

	fields := make(map[string]any, len(schema))
	for _, rule := range schema {
		switch rule.Kind {
		case KindText:
			fields[rule.Field] = firstText(doc, rule.Selector)
		case KindLink:
			fields[rule.Field] = links(doc, rule.Selector, rule.Limit, origin)
		default:
			return nil, fmt.Errorf("field %q: unknown rule kind %q", rule.Field, rule.Kind)
		}
	}

	bundle := Empty()
	if err := mapstructure.Decode(fields, bundle); err != nil {
		return nil, fmt.Errorf("decode profile fields: %w", err)
	}

	if bundle.Repositories == nil {
		bundle.Repositories = []Repository{}
	}

	return bundle, nil
}

func firstText(doc *goquery.Document, selector string) string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}

// links collects {name, url} pairs for the first limit matches in document
// order. Only the path of each href is kept and joined to the page origin,
// so links never point off the profile site. Anchors without an href keep
// their slot with an empty url.
func links(doc *goquery.Document, selector string, limit int, origin *url.URL) []map[string]string {
	result := make([]map[string]string, 0)

	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if limit > 0 && len(result) >= limit {
			return false
		}

		result = append(result, map[string]string{
			"name": strings.TrimSpace(s.Text()),
			"url":  onOrigin(s.AttrOr("href", ""), origin),
		})

		return true
	})

	return result
}

func onOrigin(href string, origin *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	return origin.ResolveReference(&url.URL{Path: ref.Path, RawQuery: ref.RawQuery}).String()
}
