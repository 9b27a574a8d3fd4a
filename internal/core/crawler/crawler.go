package crawler

import (
	"context"
	"fmt"
	"iter"
	"time"

	"flathunter-service/internal/constants"
	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"
)

// Crawler - общий алгоритм обхода выдачи: пагинация, дедупликация внутри обхода
// и получение страниц объявлений через хранилище. Разметку знает port.SiteAdapterPort.
type Crawler struct {
	site    port.SiteAdapterPort
	fetcher port.DocumentFetcherPort
	store   port.ExposeStorePort
	now     func() time.Time
}

func NewCrawler(site port.SiteAdapterPort, fetcher port.DocumentFetcherPort, store port.ExposeStorePort) (*Crawler, error) {
	if site == nil || fetcher == nil || store == nil {
		return nil, fmt.Errorf("crawler: site adapter, fetcher and store are required")
	}
	return &Crawler{site: site, fetcher: fetcher, store: store, now: time.Now}, nil
}

// WithClock подменяет часы (нужно для "sofort")
func (c *Crawler) WithClock(now func() time.Time) *Crawler {
	c.now = now
	return c
}

func (c *Crawler) Name() string {
	return c.site.Name()
}

func (c *Crawler) CanCrawl(url string) bool {
	return c.site.CanCrawl(url)
}

// Crawl лениво обходит выдачу. Страницы запрашиваются, пока набрано меньше
// min(число результатов, ResultLimit) объявлений и не исчерпан maxPages (0 - без ограничения).
// Страница без новых объявлений завершает обход.
func (c *Crawler) Crawl(ctx context.Context, searchURL string, maxPages int) iter.Seq2[domain.Expose, error] {
	return func(yield func(domain.Expose, error) bool) {
		logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
			"component": "Crawler",
			"crawler":   c.site.Name(),
		})

		template := c.site.PagedURL(searchURL)
		logger.Debug("Got search URL", port.Fields{"url": template})

		page := 1
		doc, err := c.fetcher.Fetch(ctx, c.site.PageURL(template, page))
		if err != nil {
			logger.Warn("Failed to fetch first result page, skipping search URL", port.Fields{"url": searchURL, "error": err.Error()})
			return
		}

		resultCount, err := c.site.ResultCount(doc)
		if err != nil {
			logger.Debug("Could not read result count, using 0", port.Fields{"error": err.Error()})
			resultCount = 0
		}
		limit := min(resultCount, constants.ResultLimit)

		seen := newBatch()
		added, ok := c.emitPage(ctx, doc, seen, yield)
		if !ok || added == 0 {
			return
		}

		failures := 0
		for seen.size() < limit && (maxPages <= 0 || page < maxPages) {
			if ctx.Err() != nil {
				return
			}
			page++
			logger.Debug("Next page", port.Fields{"page": page, "entries": seen.size(), "results": resultCount})

			doc, err := c.fetcher.Fetch(ctx, c.site.PageURL(template, page))
			if err != nil {
				failures++
				logger.Warn("Failed to fetch result page", port.Fields{"page": page, "error": err.Error()})
				if failures >= constants.MaxConsecutivePageFailures {
					return
				}
				continue
			}
			failures = 0

			added, ok := c.emitPage(ctx, doc, seen, yield)
			if !ok {
				return
			}
			if added == 0 {
				logger.Debug("Page yielded no new exposes, stopping", port.Fields{"page": page})
				return
			}
		}
	}
}

// emitPage отдает новые объявления страницы. ok=false - потребитель остановился
// или хранилище вернуло ошибку.
func (c *Crawler) emitPage(ctx context.Context, doc port.Document, seen *batch, yield func(domain.Expose, error) bool) (added int, ok bool) {
	for _, summary := range c.site.ExtractSummaries(doc) {
		if !seen.accept(summary.ID) {
			continue
		}

		details, err := c.FetchDetails(ctx, summary.ID, summary.URL)
		if err != nil {
			yield(domain.Expose{}, err)
			return added, false
		}

		added++
		details = details.ResolveFreeFrom(c.now(), constants.FreeFromDateLayout)
		if !yield(summary.ApplyDetails(details), nil) {
			return added, false
		}
	}
	return added, true
}

// FetchDetails возвращает фото, полную цену и дату из хранилища, а при промахе
// загружает страницу объявления и сохраняет результат. Незавершенная запись
// (DetailsFetched=false) считается промахом, отметка Sent при перезаписи сохраняется.
func (c *Crawler) FetchDetails(ctx context.Context, id, url string) (domain.ExposeDetails, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "Crawler",
		"crawler":   c.site.Name(),
		"expose_id": id,
	})

	entry, found, err := c.store.Get(ctx, id)
	if err != nil {
		return domain.ExposeDetails{}, fmt.Errorf("crawler: failed to read store entry %s: %w", id, err)
	}
	if found && entry.DetailsFetched {
		return entry.Details(), nil
	}

	logger.Info("Searching expose page", port.Fields{"url": url, "retry": found})
	doc, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		// незавершенную запись создаст стадия SaveAllExposes
		logger.Warn("Failed to fetch expose page, using defaults", port.Fields{"url": url, "error": err.Error()})
		return domain.DefaultExposeDetails(), nil
	}

	details := c.site.ExtractDetails(doc)
	fresh := domain.NewStoreEntry(id, c.site.Name(), details)
	fresh.Sent = found && entry.Sent
	if err := c.store.Put(ctx, fresh); err != nil {
		return domain.ExposeDetails{}, fmt.Errorf("crawler: failed to write store entry %s: %w", id, err)
	}
	return details, nil
}

// ResolveAddress загружает страницу объявления и достает адрес
func (c *Crawler) ResolveAddress(ctx context.Context, url string) (string, error) {
	doc, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("crawler: failed to fetch %s: %w", url, err)
	}
	result := c.site.ExtractAddress(doc)
	if result.Warning != nil {
		contextkeys.LoggerFromContext(ctx).Debug("Address not found on expose page", port.Fields{
			"url":    url,
			"reason": result.Warning.Reason,
		})
	}
	return result.Value, nil
}
