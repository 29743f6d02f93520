package notificator

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	tgModels "github.com/go-telegram/bot/models"

	"github.com/ghostcoin/ghostdrop/pkg/logger"
)

// TelegramNotificator delivers admin alerts to a fixed chat. The chat ID
// comes from configuration; the /start handler exists so an admin can learn
// the ID of a fresh chat to configure.
type TelegramNotificator struct {
	logger *logger.Logger
	bot    *bot.Bot

	adminChatID string
}

func NewTelegramNotificator(logger *logger.Logger, token, adminChatID string) (*TelegramNotificator, error) {
	provider := &TelegramNotificator{
		logger:      logger,
		adminChatID: adminChatID,
	}
	opts := []bot.Option{
		bot.WithDefaultHandler(provider.handler),
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	go b.Start(context.Background())
	provider.bot = b

	return provider, nil
}

// SendAdminNotification posts a message to the configured admin chat.
func (t *TelegramNotificator) SendAdminNotification(message string) {
	if t.adminChatID == "" {
		t.logger.Debug("No admin chat configured, dropping notification")
		return
	}
	params := &bot.SendMessageParams{
		ChatID: t.adminChatID,
		Text:   message,
	}
	_, err := t.bot.SendMessage(context.Background(), params)
	if err != nil {
		t.logger.Error("Failed to send notification: ", err)
	}
}

func (t *TelegramNotificator) handler(ctx context.Context, b *bot.Bot, update *tgModels.Update) {
	if update.Message == nil {
		return
	}
	if update.Message.Text == "/start" {
		chatID := update.Message.Chat.ID
		t.logger.Info("Telegram chat started", "chat_id", chatID)
		params := &bot.SendMessageParams{
			ChatID: chatID,
			Text:   fmt.Sprintf("This chat's ID is %d. Set TELEGRAM_ADMIN_CHAT_ID to receive claim alerts here.", chatID),
		}
		if _, err := b.SendMessage(ctx, params); err != nil {
			t.logger.Error("Failed to reply to /start: ", err)
		}
	}
}
