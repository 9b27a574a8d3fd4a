package usecase

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"flathunter-service/internal/configs"
	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/filter"
	"flathunter-service/internal/core/notifier"
	"flathunter-service/internal/core/port"
	"flathunter-service/internal/core/processor"

	"github.com/google/uuid"
)

// HuntSettings - что искать и кому отправлять
type HuntSettings struct {
	URLs         []string
	Filters      configs.FilterConfig
	Receivers    []int64
	Destinations []domain.Destination
	Template     *notifier.MessageTemplate
}

// HuntFlatsUseCase - один запуск охоты: обход всех URL, цепочка обработки,
// отметка отправленных объявлений и регистрация обработчика нажатий
type HuntFlatsUseCase struct {
	crawlers  []port.CrawlerPort
	store     port.ExposeStorePort
	messenger port.MessengerPort
	durations port.DurationCalculatorPort
	events    port.ExposeEventsPort
	registry  *notifier.Registry
	settings  HuntSettings

	running sync.Mutex
}

// HuntFlatsDeps - зависимости use case. Messenger, Durations, Events и Registry необязательны
type HuntFlatsDeps struct {
	Crawlers  []port.CrawlerPort
	Store     port.ExposeStorePort
	Messenger port.MessengerPort
	Durations port.DurationCalculatorPort
	Events    port.ExposeEventsPort
	Registry  *notifier.Registry
}

func NewHuntFlatsUseCase(deps HuntFlatsDeps, settings HuntSettings) (*HuntFlatsUseCase, error) {
	if len(deps.Crawlers) == 0 {
		return nil, fmt.Errorf("hunt flats: at least one crawler is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("hunt flats: store is required")
	}
	if settings.Template == nil {
		return nil, fmt.Errorf("hunt flats: message template is required")
	}
	return &HuntFlatsUseCase{
		crawlers:  deps.Crawlers,
		store:     deps.Store,
		messenger: deps.Messenger,
		durations: deps.Durations,
		events:    deps.Events,
		registry:  deps.Registry,
		settings:  settings,
	}, nil
}

// Execute выполняет один запуск и возвращает объявления, прошедшие всю цепочку.
// Ошибка хранилища прерывает запуск
func (uc *HuntFlatsUseCase) Execute(ctx context.Context, maxPages int) ([]domain.Expose, error) {
	if !uc.running.TryLock() {
		return nil, domain.ErrHuntInProgress
	}
	defer uc.running.Unlock()

	runID := uuid.New().String()
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "HuntFlats",
		"run_id":   runID,
	})
	ctx = contextkeys.ContextWithTraceID(ctx, runID)
	ctx = contextkeys.ContextWithLogger(ctx, ucLogger)

	filterSet, err := filter.NewBuilder().
		ReadConfig(uc.settings.Filters).
		FilterAlreadySeen(uc.store).
		Build()
	if err != nil {
		return nil, fmt.Errorf("hunt flats: %w", err)
	}

	sender := notifier.NewSender(uc.messenger, uc.store, uc.settings.Receivers, uc.settings.Template)
	chain := processor.NewChainBuilder().
		SaveAllExposes(uc.store).
		ApplyFilter(filterSet).
		ResolveAddresses(uc.crawlers).
		CalculateDurations(uc.durations, uc.settings.Destinations).
		PublishExposes(uc.events).
		SendMessages(sender).
		Build()

	// кнопки под фото нажимают, пока запуск еще идет
	uc.registerCallbacks(ucLogger, chain)

	ucLogger.Info("Hunt started", port.Fields{"urls": len(uc.settings.URLs), "max_pages": maxPages})

	var found []domain.Expose
	for expose, err := range chain.Process(ctx, uc.crawlAll(ctx, ucLogger, maxPages)) {
		if err != nil {
			ucLogger.Error("Hunt aborted", err, port.Fields{"new_offers": len(found)})
			return found, fmt.Errorf("hunt flats: %w", err)
		}

		ucLogger.Info("New offer", port.Fields{"expose_id": expose.ID, "title": expose.Title})
		if len(expose.Warnings) > 0 {
			ucLogger.Debug("Expose extracted with defaults", port.Fields{"expose_id": expose.ID, "warnings": expose.Warnings})
		}

		if err := uc.store.MarkSent(ctx, expose.ID); err != nil {
			ucLogger.Error("Failed to mark expose as sent", err, port.Fields{"expose_id": expose.ID})
			return found, fmt.Errorf("hunt flats: mark sent %s: %w", expose.ID, err)
		}
		found = append(found, expose)
	}

	ucLogger.Info("Hunt finished", port.Fields{"new_offers": len(found)})
	return found, nil
}

// crawlAll склеивает выдачи всех URL всеми подходящими краулерами
func (uc *HuntFlatsUseCase) crawlAll(ctx context.Context, logger port.LoggerPort, maxPages int) iter.Seq2[domain.Expose, error] {
	return func(yield func(domain.Expose, error) bool) {
		for _, url := range uc.settings.URLs {
			matched := false
			for _, c := range uc.crawlers {
				if !c.CanCrawl(url) {
					continue
				}
				matched = true
				for expose, err := range c.Crawl(ctx, url, maxPages) {
					if !yield(expose, err) || err != nil {
						return
					}
				}
			}
			if !matched {
				logger.Warn("No crawler can handle URL", port.Fields{"url": url})
			}
		}
	}
}

func (uc *HuntFlatsUseCase) registerCallbacks(logger port.LoggerPort, chain *processor.Chain) {
	if uc.registry == nil || uc.messenger == nil {
		return
	}
	handler := chain.CallbackHandler()
	if handler == nil {
		return
	}
	id := uc.registry.RegisterAndRetirePrevious(handler)
	logger.Debug("Callback handler registered", port.Fields{"handler_id": id.String()})
}
