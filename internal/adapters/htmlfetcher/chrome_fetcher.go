package htmlfetcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/port"

	"github.com/chromedp/chromedp"
)

// ChromeConfig - настройки безголового браузера
type ChromeConfig struct {
	ExecPath       string
	RequestTimeout time.Duration
	UserAgent      string
}

// ChromeFetcher загружает страницы через headless Chrome.
// Нужен для сайтов, которые отдают выдачу только после выполнения JS.
type ChromeFetcher struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	timeout     time.Duration
}

func NewChromeFetcher(cfg ChromeConfig) *ChromeFetcher {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &ChromeFetcher{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		timeout:     timeout,
	}
}

func (f *ChromeFetcher) Fetch(ctx context.Context, url string) (port.Document, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "ChromeFetcher"})

	tabCtx, tabCancel := chromedp.NewContext(f.allocCtx)
	defer tabCancel()

	runCtx, cancel := context.WithTimeout(tabCtx, f.timeout)
	defer cancel()
	// отмена запуска закрывает вкладку
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	logger.Debug("Navigating", port.Fields{"url": url})

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("ChromeFetcher: failed to render %s: %w", url, err)
	}

	doc, err := ParseDocument(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Close останавливает браузер
func (f *ChromeFetcher) Close() {
	f.allocCancel()
}
