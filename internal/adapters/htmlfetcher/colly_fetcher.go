package htmlfetcher

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/port"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// CollyConfig - ограничения на частоту запросов к сайту
type CollyConfig struct {
	DomainGlob     string
	Parallelism    int
	RandomDelay    time.Duration
	RequestTimeout time.Duration
}

// CollyFetcher загружает страницы обычными HTTP-запросами
type CollyFetcher struct {
	// родительский коллектор, который разделяет лимиты
	collector *colly.Collector
}

// NewCollyFetcher - конструктор
func NewCollyFetcher(cfg CollyConfig) (*CollyFetcher, error) {
	if cfg.DomainGlob == "" {
		cfg.DomainGlob = "*"
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}

	// Одни и те же страницы выдачи запрашиваются в каждом запуске
	c := colly.NewCollector(colly.AllowURLRevisit())

	// Эти правила будут наследоваться всеми клонами коллектора
	err := c.Limit(&colly.LimitRule{
		DomainGlob:  cfg.DomainGlob,
		Parallelism: cfg.Parallelism,
		RandomDelay: cfg.RandomDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("CollyFetcher: failed to set limit rule: %w", err)
	}
	if cfg.RequestTimeout > 0 {
		c.SetRequestTimeout(cfg.RequestTimeout)
	}

	extensions.RandomUserAgent(c)
	extensions.Referer(c)

	return &CollyFetcher{collector: c}, nil
}

// Fetch загружает страницу и разбирает ее
func (f *CollyFetcher) Fetch(ctx context.Context, url string) (port.Document, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "CollyFetcher"})

	// Одноразовый клон: лимиты общие, обработчики свои
	collector := f.collector.Clone()
	collector.Context = ctx

	var doc *Document
	var responseErr error

	collector.OnRequest(func(r *colly.Request) {
		logger.Debug("Making request", port.Fields{"url": r.URL.String()})
	})

	collector.OnResponse(func(r *colly.Response) {
		parsed, err := ParseDocument(bytes.NewReader(r.Body))
		if err != nil {
			responseErr = err
			return
		}
		doc = parsed
	})

	collector.OnError(func(r *colly.Response, err error) {
		responseErr = fmt.Errorf("CollyFetcher: request to %s failed with status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	if err := collector.Visit(url); err != nil {
		return nil, fmt.Errorf("CollyFetcher: failed to visit URL %s: %w", url, err)
	}
	collector.Wait()

	if responseErr != nil {
		return nil, responseErr
	}
	if doc == nil {
		return nil, fmt.Errorf("CollyFetcher: empty response from %s", url)
	}
	return doc, nil
}
