// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"context"
	"strings"

	"nice_day_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const userHelp = "`/birth YYYY-MM-DD`\n - Save your birth date.\n\n" +
	"`/today`\n - Your biorhythm for today.\n\n" +
	"`/date YYYY-MM-DD`\n - Your biorhythm for any date.\n\n" +
	"`/month [YYYY-MM]`\n - Best and worst day of a month.\n\n" +
	"`/year [YYYY]`\n - Best and worst day of every month of a year.\n\n" +
	"`/range`\n - Day-by-day table around today.\n\n" +
	"`/history`\n - Your recent lookups.\n\n" +
	"`/organ`\n - Which organ is most active right now.\n\n" +
	"`/digest on|off`\n - Daily digest and monthly outlook.\n\n" +
	"`/help`\n - Show this message."

const adminHelp = "\n\nAdmin commands:\n\n" +
	"`/subscribers`\n - List all subscribers.\n\n" +
	"`/digest_now`\n - Send today's digest immediately."

func RegisterBotCommands(
	ctx context.Context,
	b *telebot.Bot,
	subscriberService *app.SubscriberService,
	baseLogger *logrus.Entry, // For contextual logging
) {
	startHelpLogger := baseLogger.WithField("handler_group", "start_help")

	b.Handle("/start", func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := startHelpLogger.WithField("command", "/start").WithField("sender_id", senderID)
		logCtx.Info("Processing /start command")

		sub, created, err := subscriberService.Register(ctx, senderID, c.Sender().FirstName)
		if err != nil {
			logCtx.WithError(err).Error("Error registering subscriber for /start command")
			return c.Send("Something went wrong while registering you. Please try again later.")
		}
		logCtx = logCtx.WithField("subscriber_id", sub.ID)

		var text strings.Builder
		if created {
			logCtx.Info("New subscriber")
			text.WriteString("Hello! I calculate your physical, emotional and intellectual biorhythms.\n\n")
		} else {
			text.WriteString("Welcome back!\n\n")
		}
		if sub.HasBirthDate() {
			text.WriteString("Send /today for today's reading or /help for all commands.")
		} else {
			text.WriteString("First tell me your birth date, for example: /birth 1991-01-01")
		}
		return c.Send(text.String())
	})

	b.Handle("/help", func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := startHelpLogger.WithField("command", "/help").WithField("sender_id", senderID)
		logCtx.Info("Processing /help command")

		helpText := "Available commands:\n\n" + userHelp
		if subscriberService.IsAdmin(senderID) {
			logCtx.Info("User identified as Admin, sending admin help.")
			helpText += adminHelp
		}
		return c.Send(helpText, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})
}
