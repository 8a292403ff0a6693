// internal/infra/telegram/callback_handlers.go
package telegram

import (
	"context"
	"fmt"

	"nice_day_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterCallbackHandlers handles the inline buttons attached to digests and /history.
func RegisterCallbackHandlers(
	ctx context.Context,
	b *telebot.Bot,
	subscriberService *app.SubscriberService,
	biorhythmService *app.BiorhythmService,
	baseLogger *logrus.Entry,
) {
	b.Handle(telebot.OnCallback, func(c telebot.Context) error {
		data := c.Callback().Data
		log := baseLogger.WithFields(logrus.Fields{
			"handler":   "callback",
			"sender_id": c.Sender().ID,
		})

		action, err := parseCallback(data)
		if err != nil {
			c.Bot().OnError(err, c)
			return c.Respond(&telebot.CallbackResponse{Text: "Unknown action."})
		}

		switch action.kind {
		case callbackMonth:
			extrema, err := biorhythmService.Month(ctx, c.Sender().ID, action.year, action.month)
			if err != nil {
				_ = c.Respond()
				return replyError(c, log, err)
			}
			if err := c.Respond(); err != nil {
				log.WithError(err).Warn("Failed to answer callback")
			}
			return c.Send(app.FormatMonthlyExtrema(extrema), markdown)

		case callbackHistory:
			report, err := biorhythmService.Reading(ctx, c.Sender().ID, action.date)
			if err != nil {
				_ = c.Respond()
				return replyError(c, log, err)
			}
			if err := c.Respond(); err != nil {
				log.WithError(err).Warn("Failed to answer callback")
			}
			return c.Send(app.FormatDailyReport(report), markdown)

		case callbackDigestOff:
			if _, err := subscriberService.SetDigest(ctx, c.Sender().ID, false); err != nil {
				c.Bot().OnError(fmt.Errorf("error turning digest off for %d: %w", c.Sender().ID, err), c)
				return c.Respond(&telebot.CallbackResponse{Text: "Something went wrong."})
			}
			log.Info("Digest turned off from button")
			return c.Respond(&telebot.CallbackResponse{Text: "Daily digest is off. Turn it back on with /digest on."})
		}
		return c.Respond()
	})
}
