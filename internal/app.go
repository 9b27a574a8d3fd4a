package internal

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"flathunter-service/internal/adapters/googlemaps"
	"flathunter-service/internal/adapters/htmlfetcher"
	"flathunter-service/internal/adapters/immoscoutfetcher"
	logger_adapter "flathunter-service/internal/adapters/logger"
	rabbitmq_adapter "flathunter-service/internal/adapters/rabbitmq"
	"flathunter-service/internal/adapters/rest"
	"flathunter-service/internal/adapters/store/boltstore"
	"flathunter-service/internal/adapters/store/memstore"
	postgres_adapter "flathunter-service/internal/adapters/store/postgres"
	"flathunter-service/internal/adapters/store/redisstore"
	"flathunter-service/internal/adapters/telegram"
	"flathunter-service/internal/configs"
	"flathunter-service/internal/constants"
	"flathunter-service/internal/core/crawler"
	"flathunter-service/internal/core/notifier"
	"flathunter-service/internal/core/port"
	"flathunter-service/internal/core/usecase"
	"flathunter-service/internal/scheduler"
	fluentlogger "flathunter-service/pkg/fluent_logger"
	"flathunter-service/pkg/postgres"
	"flathunter-service/pkg/rabbitmq/rabbitmq_common"
	"flathunter-service/pkg/rabbitmq/rabbitmq_producer"
	"flathunter-service/pkg/redis"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const shutdownTimeout = 15 * time.Second

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	store         port.ExposeStorePort
	chromeFetcher *htmlfetcher.ChromeFetcher
	connManager   *rabbitmq_common.ConnectionManager
	eventProducer *rabbitmq_producer.Publisher

	scheduler *scheduler.Scheduler
	server    *rest.Server

	// Входящий порт: нажатия на кнопки в Telegram
	callbackListener port.EventListenerPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLevel(appConfig.StdoutLogger.Level),
		IsJSON:   appConfig.StdoutLogger.IsJSON,
		UseColor: !appConfig.StdoutLogger.IsJSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	app := &App{config: appConfig, fluentClient: fluentClient, logger: appLogger}
	ctx := context.Background()

	// --- 3. ИСХОДЯЩИЕ АДАПТЕРЫ ---
	app.store, err = newExposeStore(ctx, appConfig.Store)
	if err != nil {
		appLogger.Error("Failed to initialize expose store", err, port.Fields{"driver": appConfig.Store.Driver})
		app.closeResources()
		return nil, err
	}
	appLogger.Info("Expose store initialized.", port.Fields{"driver": appConfig.Store.Driver})

	fetcher, err := app.newDocumentFetcher()
	if err != nil {
		appLogger.Error("Failed to initialize document fetcher", err, nil)
		app.closeResources()
		return nil, err
	}

	immoscoutCrawler, err := crawler.NewCrawler(immoscoutfetcher.NewAdapter(), fetcher, app.store)
	if err != nil {
		app.closeResources()
		return nil, fmt.Errorf("failed to initialize immobilienscout crawler: %w", err)
	}
	crawlers := []port.CrawlerPort{immoscoutCrawler}
	appLogger.Info("Crawlers initialized.", port.Fields{"fetcher": appConfig.Fetcher.Kind, "crawlers": len(crawlers)})

	deps := usecase.HuntFlatsDeps{Crawlers: crawlers, Store: app.store}

	if appConfig.Telegram.BotToken != "" {
		messenger, err := telegram.NewTelegramMessenger(appConfig.Telegram.BotToken)
		if err != nil {
			appLogger.Error("Failed to initialize Telegram bot", err, nil)
			app.closeResources()
			return nil, err
		}
		registry := notifier.NewRegistry(messenger)
		deps.Messenger = messenger
		deps.Registry = registry
		app.callbackListener = telegram.NewCallbackListener(messenger, registry, baseLogger)
		appLogger.Info("Telegram messenger initialized.", port.Fields{"receivers": len(appConfig.Hunt.Telegram.ReceiverIDs)})
	}

	if appConfig.GoogleMaps.APIKey != "" && len(appConfig.Hunt.Durations) > 0 {
		calc, err := googlemaps.NewDurationCalculator(appConfig.GoogleMaps.APIKey)
		if err != nil {
			appLogger.Error("Failed to initialize Google Maps client", err, nil)
			app.closeResources()
			return nil, err
		}
		deps.Durations = calc
		appLogger.Info("Google Maps duration calculator initialized.", port.Fields{"destinations": len(appConfig.Hunt.Durations)})
	}

	if appConfig.RabbitMQ.Enabled {
		events, err := app.newExposeEvents(ctx, baseLogger)
		if err != nil {
			appLogger.Error("Failed to initialize RabbitMQ publisher", err, nil)
			app.closeResources()
			return nil, err
		}
		deps.Events = events
		appLogger.Info("RabbitMQ Event Producer initialized.", nil)
	}

	// --- 4. USE CASES ---
	messageTemplate := appConfig.Hunt.Message
	if messageTemplate == "" {
		messageTemplate = configs.DefaultMessageTemplate
	}
	tpl, err := notifier.NewMessageTemplate(messageTemplate)
	if err != nil {
		app.closeResources()
		return nil, err
	}

	huntUseCase, err := usecase.NewHuntFlatsUseCase(deps, usecase.HuntSettings{
		URLs:         appConfig.Hunt.URLs,
		Filters:      appConfig.Hunt.Filters,
		Receivers:    appConfig.Hunt.Telegram.ReceiverIDs,
		Destinations: appConfig.Hunt.Destinations(),
		Template:     tpl,
	})
	if err != nil {
		app.closeResources()
		return nil, err
	}
	getExposeUseCase := usecase.NewGetExposeUseCase(app.store)
	appLogger.Info("All use cases initialized.", nil)

	// --- 5. ВХОДЯЩИЕ АДАПТЕРЫ ---
	cronLogger := logger_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "cron"}))
	app.scheduler, err = scheduler.New(huntUseCase, appConfig.HuntInterval, appConfig.Hunt.MaxPages, baseLogger, cronLogger)
	if err != nil {
		app.closeResources()
		return nil, err
	}

	if appConfig.HTTP.Enabled {
		handlers := rest.NewHuntHandlers(huntUseCase, getExposeUseCase, appConfig.Hunt.MaxPages)
		app.server = rest.NewServer(appConfig.HTTP.Port, handlers, appConfig.HTTP.AllowedOrigins, baseLogger)
	}

	return app, nil
}

func newExposeStore(ctx context.Context, cfg configs.StoreConfig) (port.ExposeStorePort, error) {
	switch cfg.Driver {
	case constants.StoreDriverBolt:
		store, err := boltstore.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case constants.StoreDriverPostgres:
		pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: cfg.DatabaseURL})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		store, err := postgres_adapter.NewPostgresExposeStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	case constants.StoreDriverRedis:
		client, err := redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		store, err := redisstore.New(client)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return store, nil
	case constants.StoreDriverMemory:
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func (a *App) newDocumentFetcher() (port.DocumentFetcherPort, error) {
	cfg := a.config.Fetcher
	if cfg.Kind == constants.FetcherChrome {
		a.chromeFetcher = htmlfetcher.NewChromeFetcher(htmlfetcher.ChromeConfig{
			ExecPath:       cfg.ChromePath,
			RequestTimeout: cfg.RequestTimeout,
		})
		return a.chromeFetcher, nil
	}
	fetcher, err := htmlfetcher.NewCollyFetcher(htmlfetcher.CollyConfig{
		DomainGlob:     "*immobilienscout24.de*",
		Parallelism:    cfg.Parallelism,
		RandomDelay:    2 * time.Second,
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		return nil, err
	}
	return fetcher, nil
}

func (a *App) newExposeEvents(ctx context.Context, baseLogger port.LoggerPort) (port.ExposeEventsPort, error) {
	connManagerBridge := logger_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, connManagerBridge)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager

	producerBridge := logger_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"}))
	a.eventProducer, err = rabbitmq_producer.NewPublisher(ctx, rabbitmq_producer.PublisherConfig{
		ExchangeName:             constants.ExchangeExposes,
		ExchangeType:             constants.ExchangeTypeExposes,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   producerBridge,
	}, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}

	events, err := rabbitmq_adapter.NewExposeEventsAdapter(a.eventProducer)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	var wg sync.WaitGroup
	componentErrors := make(chan error, 2)

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)
		cancelApp()

		if a.server != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			if err := a.server.Stop(shutdownCtx); err != nil {
				a.logger.Error("Error stopping REST server", err, nil)
			}
			cancel()
		}
		a.scheduler.Stop()

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		a.closeResources()
	}()

	a.logger.Info("Application is starting...", port.Fields{"interval": a.config.HuntInterval.String()})

	if a.callbackListener != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.callbackListener.Start(appCtx); err != nil {
				a.logger.Error("Listener stopped with an unexpected error", err, nil)
				componentErrors <- fmt.Errorf("telegram listener error: %w", err)
			}
		}()
	}

	if a.server != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.server.Start(); err != nil {
				componentErrors <- err
			}
		}()
	}

	if err := a.scheduler.Start(appCtx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received signal, shutting down", port.Fields{"signal": receivedSignal.String()})
	case err := <-componentErrors:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	}

	return nil
}

// closeResources закрывает все, что успело открыться. Безопасен при частичной инициализации
func (a *App) closeResources() {
	if a.callbackListener != nil {
		if err := a.callbackListener.Close(); err != nil {
			a.logger.Error("Error closing Telegram listener", err, nil)
		}
	}
	if a.eventProducer != nil {
		if err := a.eventProducer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection manager", err, nil)
		}
	}
	if a.chromeFetcher != nil {
		a.chromeFetcher.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Error("Error closing expose store", err, nil)
		}
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			log.Printf("App: Error closing fluent client: %v\n", err)
		}
		a.fluentClient = nil
	}
}
