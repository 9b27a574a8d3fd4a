package processor

import (
	"context"
	"iter"

	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/filter"
	"flathunter-service/internal/core/port"
)

// Sender - стадия отправки уведомлений, которая умеет отдавать обработчик нажатий
type Sender interface {
	ExposeStage
	PhotosHandler() port.CallbackHandlerPort
}

// ChainBuilder собирает цепочку в порядке вызова методов
type ChainBuilder struct {
	processors []Processor
	sender     Sender
}

func NewChainBuilder() *ChainBuilder {
	return &ChainBuilder{}
}

// SaveAllExposes сохраняет каждое объявление в хранилище до фильтрации
func (b *ChainBuilder) SaveAllExposes(store port.ExposeStorePort) *ChainBuilder {
	return b.add(PerExpose(NewSaveAllExposes(store)))
}

// ApplyFilter пропускает только интересные объявления
func (b *ChainBuilder) ApplyFilter(set *filter.Set) *ChainBuilder {
	return b.add(filterProcessor{set: set})
}

// ResolveAddresses заменяет адреса-ссылки на адрес со страницы объявления
func (b *ChainBuilder) ResolveAddresses(crawlers []port.CrawlerPort) *ChainBuilder {
	return b.add(PerExpose(NewAddressResolver(crawlers)))
}

// CalculateDurations добавляет время в пути. Без калькулятора или назначений - ничего не делает
func (b *ChainBuilder) CalculateDurations(calc port.DurationCalculatorPort, destinations []domain.Destination) *ChainBuilder {
	if calc == nil || len(destinations) == 0 {
		return b
	}
	return b.add(PerExpose(NewDurationCalculator(calc, destinations)))
}

// PublishExposes публикует событие о каждом новом объявлении
func (b *ChainBuilder) PublishExposes(events port.ExposeEventsPort) *ChainBuilder {
	if events == nil {
		return b
	}
	return b.add(PerExpose(NewEventPublisher(events)))
}

// Map применяет функцию к каждому объявлению
func (b *ChainBuilder) Map(fn func(domain.Expose) domain.Expose) *ChainBuilder {
	return b.add(PerExpose(StageFunc(func(_ context.Context, e domain.Expose) (domain.Expose, bool, error) {
		return fn(e), true, nil
	})))
}

// SendMessages отправляет уведомления
func (b *ChainBuilder) SendMessages(sender Sender) *ChainBuilder {
	b.sender = sender
	return b.add(PerExpose(sender))
}

// Add добавляет произвольный процессор
func (b *ChainBuilder) Add(p Processor) *ChainBuilder {
	return b.add(p)
}

func (b *ChainBuilder) Build() *Chain {
	chain := &Chain{processors: append([]Processor(nil), b.processors...)}
	if b.sender != nil {
		chain.callbacks = b.sender.PhotosHandler()
	}
	return chain
}

func (b *ChainBuilder) add(p Processor) *ChainBuilder {
	b.processors = append(b.processors, p)
	return b
}

type filterProcessor struct {
	set *filter.Set
}

func (f filterProcessor) ProcessExposes(ctx context.Context, exposes iter.Seq2[domain.Expose, error]) iter.Seq2[domain.Expose, error] {
	return f.set.Filter(ctx, exposes)
}
