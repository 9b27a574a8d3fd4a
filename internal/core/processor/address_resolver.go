package processor

import (
	"context"
	"strings"

	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"
)

// AddressResolver: некоторые сайты вместо адреса отдают ссылку на объявление,
// такой адрес достается со страницы объявления краулером, который умеет ее обойти
type AddressResolver struct {
	crawlers []port.CrawlerPort
}

func NewAddressResolver(crawlers []port.CrawlerPort) *AddressResolver {
	return &AddressResolver{crawlers: crawlers}
}

func (r *AddressResolver) ProcessExpose(ctx context.Context, expose domain.Expose) (domain.Expose, bool, error) {
	expose.Address = strings.Join(strings.Fields(expose.Address), " ")
	if !strings.HasPrefix(expose.Address, "http") {
		return expose, true, nil
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "AddressResolver",
		"expose_id": expose.ID,
	})

	for _, c := range r.crawlers {
		if !c.CanCrawl(expose.Address) {
			continue
		}
		address, err := c.ResolveAddress(ctx, expose.Address)
		if err != nil {
			logger.Warn("Failed to resolve address", port.Fields{"url": expose.Address, "error": err.Error()})
			return expose, true, nil
		}
		expose.Address = address
		return expose, true, nil
	}

	logger.Debug("No crawler can resolve address", port.Fields{"url": expose.Address})
	return expose, true, nil
}
