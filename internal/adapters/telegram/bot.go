package telegram

import (
	"context"
	"fmt"

	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/port"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	maxCaptionLength = 1024
	maxTextLength    = 4096
)

// botAPI - часть tgbotapi.BotAPI, которой пользуется адаптер
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	SendMediaGroup(config tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// TelegramMessenger реализует MessengerPort через Bot API
type TelegramMessenger struct {
	bot botAPI
}

func NewTelegramMessenger(token string) (*TelegramMessenger, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram: bot token is required")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: failed to create bot: %w", err)
	}
	return &TelegramMessenger{bot: bot}, nil
}

func (m *TelegramMessenger) SendText(ctx context.Context, receiverID int64, text string) error {
	msg := tgbotapi.NewMessage(receiverID, truncate(text, maxTextLength))

	if _, err := m.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram: send message to %d: %w", receiverID, err)
	}
	contextkeys.LoggerFromContext(ctx).Debug("Message sent", port.Fields{"receiver_id": receiverID})
	return nil
}

func (m *TelegramMessenger) SendPhoto(ctx context.Context, receiverID int64, photoURL, caption string, button *port.ActionButton) (int, error) {
	photo := tgbotapi.NewPhoto(receiverID, tgbotapi.FileURL(photoURL))
	photo.Caption = truncate(caption, maxCaptionLength)
	if button != nil {
		photo.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(button.Text, button.Data)),
		)
	}

	sent, err := m.bot.Send(photo)
	if err != nil {
		return 0, fmt.Errorf("telegram: send photo to %d: %w", receiverID, err)
	}
	contextkeys.LoggerFromContext(ctx).Debug("Photo sent", port.Fields{"receiver_id": receiverID, "message_id": sent.MessageID})
	return sent.MessageID, nil
}

func (m *TelegramMessenger) SendPhotoGroup(_ context.Context, receiverID int64, photoURLs []string, replyTo int) error {
	media := make([]interface{}, 0, len(photoURLs))
	for _, u := range photoURLs {
		media = append(media, tgbotapi.NewInputMediaPhoto(tgbotapi.FileURL(u)))
	}
	group := tgbotapi.NewMediaGroup(receiverID, media)
	group.ReplyToMessageID = replyTo

	if _, err := m.bot.SendMediaGroup(group); err != nil {
		return fmt.Errorf("telegram: send media group to %d: %w", receiverID, err)
	}
	return nil
}

func (m *TelegramMessenger) AnswerCallback(_ context.Context, callbackID, text string) error {
	if _, err := m.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return fmt.Errorf("telegram: answer callback %s: %w", callbackID, err)
	}
	return nil
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
