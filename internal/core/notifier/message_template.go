package notifier

import (
	"fmt"
	"regexp"
	"strings"

	"flathunter-service/internal/core/domain"
)

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

var knownPlaceholders = map[string]func(domain.Expose) string{
	"title":       func(e domain.Expose) string { return e.Title + "\n" },
	"rooms":       func(e domain.Expose) string { return e.Rooms },
	"size":        func(e domain.Expose) string { return e.Size },
	"price":       func(e domain.Expose) string { return e.Price },
	"url":         func(e domain.Expose) string { return e.URL },
	"address":     func(e domain.Expose) string { return e.Address },
	"image":       func(e domain.Expose) string { return e.Image },
	"total_price": func(e domain.Expose) string { return e.TotalPrice },
	"free_from":   func(e domain.Expose) string { return e.FreeFrom },
	"durations":   func(e domain.Expose) string { return e.Durations },
}

// MessageTemplate - текст уведомления с плейсхолдерами вида {title}
type MessageTemplate struct {
	raw string
}

// NewMessageTemplate отклоняет шаблоны с неизвестными плейсхолдерами
func NewMessageTemplate(raw string) (*MessageTemplate, error) {
	for _, match := range placeholderPattern.FindAllStringSubmatch(raw, -1) {
		if _, ok := knownPlaceholders[match[1]]; !ok {
			return nil, fmt.Errorf("message template: unknown placeholder {%s}", match[1])
		}
	}
	return &MessageTemplate{raw: raw}, nil
}

// Render подставляет поля объявления и обрезает пробелы по краям
func (t *MessageTemplate) Render(expose domain.Expose) string {
	text := placeholderPattern.ReplaceAllStringFunc(t.raw, func(token string) string {
		return knownPlaceholders[token[1:len(token)-1]](expose)
	})
	return strings.TrimSpace(text)
}
