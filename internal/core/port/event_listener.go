package port

import "context"

// EventListenerPort определяет контракт для компонента, который слушает
// внешние события (нажатия кнопок в мессенджере) и запускает
// соответствующую бизнес-логику
type EventListenerPort interface {
	// Start запускает слушателя и блокируется до отмены контекста
	Start(ctx context.Context) error

	// Close корректно останавливает слушателя
	Close() error
}
