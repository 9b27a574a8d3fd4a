package port

import (
	"context"
	"flathunter-service/internal/core/domain"
	"iter"
)

// CrawlerPort объединяет все операции, которые можно выполнить с сайтом объявлений.
type CrawlerPort interface {
	Name() string
	CanCrawl(url string) bool

	// Crawl лениво отдает объявления поисковой выдачи. Ошибка в последовательности
	// означает сбой хранилища и прерывает обход.
	Crawl(ctx context.Context, searchURL string, maxPages int) iter.Seq2[domain.Expose, error]

	// FetchDetails возвращает поля страницы объявления, по возможности из хранилища.
	FetchDetails(ctx context.Context, id, url string) (domain.ExposeDetails, error)

	// ResolveAddress достает адрес со страницы объявления.
	ResolveAddress(ctx context.Context, url string) (string, error)
}
