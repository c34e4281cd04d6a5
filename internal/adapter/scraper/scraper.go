// Package scraper extracts readable text and air-quality figures from
// public web pages.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Anand123098sitare/Weather-Insights/internal/domain"
)

// PageContent is the readable text extracted from a page.
type PageContent struct {
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
}

// AQIMention is one text fragment that talks about air quality, with any
// plausible AQI values found in it.
type AQIMention struct {
	Text   string `json:"text"`
	Values []int  `json:"values,omitempty"`
}

// AQIInfo is the air-quality content mined from a page. When at least one
// AQI value was found, Level classifies the highest.
type AQIInfo struct {
	URL      string           `json:"url"`
	Title    string           `json:"title"`
	Mentions []AQIMention     `json:"mentions"`
	MaxValue int              `json:"max_value,omitempty"`
	Level    *domain.AQILevel `json:"level,omitempty"`
}

// SourceUpdate is the result of scraping one known air-quality source.
// Failures are reported per source rather than failing the whole sweep.
type SourceUpdate struct {
	Source  string   `json:"source"`
	URL     string   `json:"url"`
	Title   string   `json:"title,omitempty"`
	Summary []string `json:"summary,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type source struct {
	name string
	url  string
}

var defaultSources = []source{
	{"WHO Air Quality", "https://www.who.int/health-topics/air-pollution"},
	{"EPA AirNow", "https://www.airnow.gov/"},
	{"UNEP Air Quality", "https://www.unep.org/explore-topics/air"},
}

// Scraper fetches pages and extracts their readable content.
type Scraper struct {
	httpClient *http.Client
	logger     *slog.Logger
	sources    []source
}

// New creates a scraper with the given per-request timeout.
func New(timeout time.Duration, logger *slog.Logger) *Scraper {
	return &Scraper{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		sources:    defaultSources,
	}
}

// ExtractText fetches a page and returns its title and readable paragraphs.
// Navigation, script, and style content is stripped first.
func (s *Scraper) ExtractText(ctx context.Context, pageURL string) (PageContent, error) {
	doc, err := s.fetch(ctx, pageURL)
	if err != nil {
		return PageContent{}, err
	}

	return PageContent{
		URL:        pageURL,
		Title:      strings.TrimSpace(doc.Find("title").First().Text()),
		Paragraphs: readableParagraphs(doc),
	}, nil
}

// aqiValuePattern matches an AQI figure of up to three digits near the
// term itself, e.g. "AQI of 152" or "AQI: 87".
var aqiValuePattern = regexp.MustCompile(`(?i)\bAQI\b[^0-9]{0,20}(\d{1,3})`)

// AQIInfo fetches a page and mines it for air-quality mentions and values.
func (s *Scraper) AQIInfo(ctx context.Context, pageURL string) (AQIInfo, error) {
	doc, err := s.fetch(ctx, pageURL)
	if err != nil {
		return AQIInfo{}, err
	}

	info := AQIInfo{
		URL:   pageURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	for _, text := range readableParagraphs(doc) {
		lower := strings.ToLower(text)
		if !strings.Contains(lower, "aqi") && !strings.Contains(lower, "air quality") {
			continue
		}
		m := AQIMention{Text: text}
		for _, match := range aqiValuePattern.FindAllStringSubmatch(text, -1) {
			v, err := strconv.Atoi(match[1])
			if err != nil || v > 500 {
				continue
			}
			m.Values = append(m.Values, v)
			if v > info.MaxValue {
				info.MaxValue = v
			}
		}
		info.Mentions = append(info.Mentions, m)
	}

	if info.MaxValue > 0 {
		if level, err := domain.ClassifyAQI(info.MaxValue); err == nil {
			info.Level = &level
		}
	}
	return info, nil
}

// Updates scrapes every known air-quality source, best effort. A failing
// source yields an entry with its error instead of aborting the sweep.
func (s *Scraper) Updates(ctx context.Context) []SourceUpdate {
	updates := make([]SourceUpdate, 0, len(s.sources))
	for _, src := range s.sources {
		u := SourceUpdate{Source: src.name, URL: src.url}
		content, err := s.ExtractText(ctx, src.url)
		if err != nil {
			s.logger.Warn("source scrape failed", "source", src.name, "error", err)
			u.Error = err.Error()
			updates = append(updates, u)
			continue
		}
		u.Title = content.Title
		if len(content.Paragraphs) > 3 {
			content.Paragraphs = content.Paragraphs[:3]
		}
		u.Summary = content.Paragraphs
		updates = append(updates, u)
	}
	return updates
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "weather-insights/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// readableParagraphs strips non-content elements and collects the text of
// paragraphs, headings, and list items, deduplicated in document order.
func readableParagraphs(doc *goquery.Document) []string {
	doc.Find("script, style, nav, header, footer, aside").Remove()

	var out []string
	seen := make(map[string]bool)
	doc.Find("p, h1, h2, h3, li").Each(func(_ int, sel *goquery.Selection) {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if len(text) < 20 || seen[text] {
			return
		}
		seen[text] = true
		out = append(out, text)
	})
	return out
}
