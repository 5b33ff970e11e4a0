package notification

import (
	"context"
	"fmt"

	"coachhub/coaching-app/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// telegramNotifier delivers messages through a telegram bot.
type telegramNotifier struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramNotifier creates a notifier backed by the given bot token.
func NewTelegramNotifier(token string) (Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &telegramNotifier{bot: bot}, nil
}

// PlanAssigned messages the customer's chat with the new plan window.
// Customers without a linked chat are skipped.
func (n *telegramNotifier) PlanAssigned(ctx context.Context, customer *domain.User, plan *domain.TrainingPlan) error {
	if customer.TelegramChatID == nil {
		return nil
	}

	text := fmt.Sprintf("You have a new training plan: %s to %s",
		plan.StartDate.Format("2006-01-02"),
		plan.EndDate.Format("2006-01-02"))
	msg := tgbotapi.NewMessage(*customer.TelegramChatID, text)

	_, err := n.bot.Send(msg)
	return err
}
