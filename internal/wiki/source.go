package wiki

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/kiruha311/micro-learning-bot/internal/domain/entities"
)

const (
	unknownTitle = "Неизвестная статья"
	noSummary    = "Нет описания."
	ellipsis     = "..."
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// Config configures the random article source.
type Config struct {
	RandomURL    string
	UserAgent    string
	Timeout      time.Duration
	SummaryLimit int // in runes
}

// Source loads random articles from Wikipedia.
type Source struct {
	client *http.Client
	cfg    Config
	logger *zap.Logger
}

func NewSource(cfg Config, logger *zap.Logger) *Source {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.SummaryLimit <= 0 {
		cfg.SummaryLimit = 500
	}
	return &Source{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
}

// FetchRandom never fails: any error is turned into a placeholder article.
func (s *Source) FetchRandom(ctx context.Context) entities.Article {
	article, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch random article", zap.Error(err))
		return entities.NewPlaceholderArticle(err.Error())
	}

	s.logger.Debug("fetched random article",
		zap.String("title", article.Title),
		zap.String("url", article.URL),
	)
	return article
}

func (s *Source) fetch(ctx context.Context) (entities.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.RandomURL, nil)
	if err != nil {
		return entities.Article{}, fmt.Errorf("build request: %w", err)
	}
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return entities.Article{}, fmt.Errorf("get random article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return entities.Article{}, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return entities.Article{}, fmt.Errorf("parse page: %w", err)
	}

	return entities.Article{
		Title:   extractTitle(doc),
		URL:     resp.Request.URL.String(), // after redirects
		Summary: truncate(extractSummary(doc), s.cfg.SummaryLimit),
	}, nil
}

func extractTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("h1#firstHeading").First().Text())
	if title == "" {
		return unknownTitle
	}
	return title
}

// extractSummary takes the first non-empty paragraph of the article body,
// falling back to any paragraph on the page.
func extractSummary(doc *goquery.Document) string {
	for _, selector := range []string{"#mw-content-text p", "p"} {
		var summary string
		doc.Find(selector).EachWithBreak(func(_ int, p *goquery.Selection) bool {
			summary = strings.TrimSpace(p.Text())
			return summary == ""
		})
		if summary != "" {
			return summary
		}
	}
	return noSummary
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}
