package port

import "context"

// ActionButton - кнопка под сообщением; Data возвращается в CallbackQuery
type ActionButton struct {
	Text string
	Data string
}

// CallbackQuery - нажатие на кнопку под отправленным сообщением
type CallbackQuery struct {
	ID         string
	ReceiverID int64
	MessageID  int
	Data       string
}

// MessengerPort - канал уведомлений
type MessengerPort interface {
	SendText(ctx context.Context, receiverID int64, text string) error
	// SendPhoto возвращает ID отправленного сообщения
	SendPhoto(ctx context.Context, receiverID int64, photoURL, caption string, button *ActionButton) (int, error)
	// SendPhotoGroup отправляет альбом ответом на сообщение replyTo
	SendPhotoGroup(ctx context.Context, receiverID int64, photoURLs []string, replyTo int) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// CallbackHandlerPort обрабатывает нажатия на кнопки
type CallbackHandlerPort interface {
	HandleCallback(ctx context.Context, query CallbackQuery)
}
