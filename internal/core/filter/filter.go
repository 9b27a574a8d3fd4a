package filter

import (
	"context"
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"

	"flathunter-service/internal/configs"
	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"
)

// Filter - один предикат над объявлением
type Filter interface {
	IsInteresting(ctx context.Context, expose domain.Expose) (bool, error)
}

// Func позволяет использовать функцию как Filter
type Func func(ctx context.Context, expose domain.Expose) (bool, error)

func (f Func) IsInteresting(ctx context.Context, expose domain.Expose) (bool, error) {
	return f(ctx, expose)
}

// Set - конъюнкция фильтров
type Set struct {
	filters []Filter
}

// IsInteresting останавливается на первом отказавшем фильтре
func (s *Set) IsInteresting(ctx context.Context, expose domain.Expose) (bool, error) {
	for _, f := range s.filters {
		ok, err := f.IsInteresting(ctx, expose)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Filter лениво пропускает только интересные объявления
func (s *Set) Filter(ctx context.Context, exposes iter.Seq2[domain.Expose, error]) iter.Seq2[domain.Expose, error] {
	return func(yield func(domain.Expose, error) bool) {
		for expose, err := range exposes {
			if err != nil {
				yield(domain.Expose{}, err)
				return
			}
			ok, err := s.IsInteresting(ctx, expose)
			if err != nil {
				yield(domain.Expose{}, err)
				return
			}
			if ok && !yield(expose, nil) {
				return
			}
		}
	}
}

func (s *Set) Len() int {
	return len(s.filters)
}

// Builder собирает Set из конфигурации
type Builder struct {
	filters []Filter
	err     error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// ReadConfig добавляет фильтры по границам цены, площади, комнат и по заголовку
func (b *Builder) ReadConfig(cfg configs.FilterConfig) *Builder {
	b.addRange("price", func(e domain.Expose) string { return e.Price }, cfg.MinPrice, cfg.MaxPrice)
	b.addRange("size", func(e domain.Expose) string { return e.Size }, cfg.MinSize, cfg.MaxSize)
	b.addRange("rooms", func(e domain.Expose) string { return e.Rooms }, cfg.MinRooms, cfg.MaxRooms)

	for _, pattern := range cfg.ExcludedTitles {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			b.err = fmt.Errorf("filter: invalid excluded title pattern %q: %w", pattern, err)
			continue
		}
		b.filters = append(b.filters, excludedTitle(re))
	}
	return b
}

// FilterAlreadySeen отбрасывает объявления, которые уже были отправлены
func (b *Builder) FilterAlreadySeen(store port.ExposeStorePort) *Builder {
	b.filters = append(b.filters, Func(func(ctx context.Context, e domain.Expose) (bool, error) {
		entry, found, err := store.Get(ctx, e.ID)
		if err != nil {
			return false, fmt.Errorf("filter: failed to read store entry %s: %w", e.ID, err)
		}
		return !found || !entry.Sent, nil
	}))
	return b
}

// Add добавляет произвольный фильтр
func (b *Builder) Add(f Filter) *Builder {
	b.filters = append(b.filters, f)
	return b
}

func (b *Builder) Build() (*Set, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Set{filters: append([]Filter(nil), b.filters...)}, nil
}

func (b *Builder) addRange(field string, value func(domain.Expose) string, minValue, maxValue *float64) {
	if minValue == nil && maxValue == nil {
		return
	}
	b.filters = append(b.filters, Func(func(_ context.Context, e domain.Expose) (bool, error) {
		number, ok := ParseNumber(value(e))
		if !ok {
			// непонятное значение не повод выбрасывать объявление
			return true, nil
		}
		if minValue != nil && number < *minValue {
			return false, nil
		}
		if maxValue != nil && number > *maxValue {
			return false, nil
		}
		return true, nil
	}))
}

func excludedTitle(re *regexp.Regexp) Filter {
	return Func(func(_ context.Context, e domain.Expose) (bool, error) {
		return !re.MatchString(e.Title), nil
	})
}

var numberPattern = regexp.MustCompile(`\d[\d.]*(,\d+)?`)

// ParseNumber разбирает число в немецкой записи: "1.234,50 €" -> 1234.5, "54,5 qm" -> 54.5
func ParseNumber(text string) (float64, bool) {
	match := numberPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	normalized := strings.ReplaceAll(match, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	number, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return number, true
}
