package telegram

import (
	"context"
	"errors"
	"fmt"

	"nice_day_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterAdminHandlers registers handlers for admin commands.
// It requires the bot instance, the services, and the configured admin Telegram ID.
func RegisterAdminHandlers(
	ctx context.Context,
	b *telebot.Bot,
	subscriberService *app.SubscriberService,
	digestService *app.DigestService,
	biorhythmService *app.BiorhythmService,
	adminTelegramID int64,
	baseLogger *logrus.Entry,
) {
	b.Handle("/subscribers", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/subscribers",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		subs, err := subscriberService.ListAll(ctx, c.Sender().ID)
		if err != nil {
			if errors.Is(err, app.ErrAdminNotAuthorized) {
				handlerLogger.Warn("Unauthorized access attempt")
				return c.Send("Error: you are not allowed to run this command.")
			}
			handlerLogger.WithError(err).Error("Failed to list subscribers")
			return c.Send(fmt.Sprintf("Could not list subscribers: %s", err.Error()))
		}

		handlerLogger.WithField("count", len(subs)).Info("Subscribers listed")
		return c.Send(app.FormatSubscribers(subs), markdown)
	})

	b.Handle("/digest_now", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/digest_now",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("Error: you are not allowed to run this command.")
		}

		day := biorhythmService.Today()
		res, err := digestService.SendDaily(ctx, day)
		if err != nil {
			handlerLogger.WithError(err).Error("Manual digest run failed")
			return c.Send(fmt.Sprintf("Digest run failed: %s", err.Error()))
		}

		handlerLogger.WithFields(logrus.Fields{
			"digest_run_id": res.RunID,
			"sent":          res.Sent,
			"skipped":       res.Skipped,
			"failed":        res.Failed,
		}).Info("Manual digest run finished")
		return c.Send(fmt.Sprintf("Digest for %s: %d sent, %d already delivered, %d failed.", day, res.Sent, res.Skipped, res.Failed))
	})
}
