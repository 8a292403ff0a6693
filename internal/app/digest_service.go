// internal/app/digest_service.go
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nice_day_bot/internal/domain/biorhythm"
	"nice_day_bot/internal/domain/digest"
	"nice_day_bot/internal/domain/subscriber"
	domainTelegram "nice_day_bot/internal/domain/telegram"
	idb "nice_day_bot/internal/infra/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// Callback data attached to digest buttons.
const (
	CallbackMonthPrefix   = "month_"
	CallbackHistoryPrefix = "hist_"
	CallbackDigestOff     = "digest_off"
)

// DigestResult counts what happened to each recipient of a run.
type DigestResult struct {
	RunID   int64
	Sent    int
	Skipped int // already delivered earlier for the same run
	Failed  int
}

// DigestService broadcasts the daily digest and the monthly outlook.
type DigestService struct {
	subscriberRepo subscriber.Repository
	digestRepo     digest.Repository
	telegramClient domainTelegram.Client
	log            *logrus.Entry
}

func NewDigestService(
	sr subscriber.Repository,
	dr digest.Repository,
	tc domainTelegram.Client,
	log *logrus.Entry,
) *DigestService {
	return &DigestService{
		subscriberRepo: sr,
		digestRepo:     dr,
		telegramClient: tc,
		log:            log,
	}
}

// renderFunc builds the message for one subscriber.
type renderFunc func(sub *subscriber.Subscriber, birth biorhythm.Date) (string, *telebot.ReplyMarkup, error)

// SendDaily sends the report of date to every digest recipient.
func (s *DigestService) SendDaily(ctx context.Context, date biorhythm.Date) (DigestResult, error) {
	return s.send(ctx, digest.RunTypeDaily, date, func(sub *subscriber.Subscriber, birth biorhythm.Date) (string, *telebot.ReplyMarkup, error) {
		report, err := BuildDailyReport(birth, date)
		if err != nil {
			return "", nil, err
		}
		markup := &telebot.ReplyMarkup{}
		btnMonth := markup.Data("Month outlook", fmt.Sprintf("%s%04d-%02d", CallbackMonthPrefix, date.Year, date.Month))
		btnOff := markup.Data("Stop digest", CallbackDigestOff)
		markup.Inline(markup.Row(btnMonth, btnOff))
		return "Good morning! Here is your day.\n\n" + FormatDailyReport(report), markup, nil
	})
}

// SendMonthlyOutlook sends the best and worst day of year/month to every digest recipient.
func (s *DigestService) SendMonthlyOutlook(ctx context.Context, year, month int) (DigestResult, error) {
	first, err := biorhythm.NewDate(year, month, 1)
	if err != nil {
		return DigestResult{}, err
	}
	return s.send(ctx, digest.RunTypeMonthly, first, func(sub *subscriber.Subscriber, birth biorhythm.Date) (string, *telebot.ReplyMarkup, error) {
		extrema, err := biorhythm.ScanMonth(birth, year, month)
		if err != nil {
			return "", nil, err
		}
		markup := &telebot.ReplyMarkup{}
		btnBest := markup.Data("Best day", CallbackHistoryPrefix+extrema.High.Date.String())
		btnWorst := markup.Data("Worst day", CallbackHistoryPrefix+extrema.Low.Date.String())
		btnOff := markup.Data("Stop digest", CallbackDigestOff)
		markup.Inline(markup.Row(btnBest, btnWorst), markup.Row(btnOff))
		return FormatMonthlyExtrema(extrema), markup, nil
	})
}

func (s *DigestService) findOrCreateRun(ctx context.Context, runType digest.RunType, runDate time.Time) (*digest.Run, error) {
	run, err := s.digestRepo.GetRunByDateAndType(ctx, runDate, runType)
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, idb.ErrDigestRunNotFound) {
		return nil, fmt.Errorf("failed to get digest run: %w", err)
	}

	run = &digest.Run{RunDate: runDate, Type: runType}
	if err := s.digestRepo.CreateRun(ctx, run); err != nil {
		if errors.Is(err, idb.ErrDuplicateDigestRun) {
			return s.digestRepo.GetRunByDateAndType(ctx, runDate, runType)
		}
		return nil, fmt.Errorf("failed to create digest run: %w", err)
	}
	return run, nil
}

func (s *DigestService) send(ctx context.Context, runType digest.RunType, date biorhythm.Date, render renderFunc) (DigestResult, error) {
	runLog := s.log.WithFields(logrus.Fields{
		"run_id":   uuid.NewString(),
		"run_type": runType,
		"run_date": date.String(),
	})
	runLog.Info("Starting digest run")

	run, err := s.findOrCreateRun(ctx, runType, date.UTC())
	if err != nil {
		runLog.WithError(err).Error("Could not prepare digest run")
		return DigestResult{}, err
	}
	runLog = runLog.WithField("digest_run_id", run.ID)
	result := DigestResult{RunID: run.ID}

	recipients, err := s.subscriberRepo.ListDigestRecipients(ctx)
	if err != nil {
		runLog.WithError(err).Error("Failed to list digest recipients")
		return result, fmt.Errorf("failed to list digest recipients: %w", err)
	}
	if len(recipients) == 0 {
		runLog.Info("No digest recipients. Nothing to send.")
		return result, nil
	}

	for _, sub := range recipients {
		if err := ctx.Err(); err != nil {
			runLog.WithError(err).Warn("Digest run interrupted")
			return result, err
		}
		subLog := runLog.WithFields(logrus.Fields{"subscriber_id": sub.ID, "telegram_id": sub.TelegramID})

		prev, err := s.digestRepo.GetDelivery(ctx, run.ID, sub.ID)
		switch {
		case err == nil && prev.Status == digest.DeliverySent:
			result.Skipped++
			continue
		case err != nil && !errors.Is(err, idb.ErrDeliveryNotFound):
			subLog.WithError(err).Error("Could not check previous delivery")
			result.Failed++
			continue
		}

		if !sub.HasBirthDate() {
			result.Skipped++
			continue
		}

		sendErr := s.deliver(ctx, sub, render)
		delivery := &digest.Delivery{RunID: run.ID, SubscriberID: sub.ID, Status: digest.DeliverySent}
		if sendErr != nil {
			subLog.WithError(sendErr).Warn("Digest delivery failed")
			delivery.Status = digest.DeliveryFailed
			delivery.Error = sql.NullString{String: sendErr.Error(), Valid: true}
			result.Failed++
		} else {
			result.Sent++
		}
		if err := s.digestRepo.RecordDelivery(ctx, delivery); err != nil {
			subLog.WithError(err).Error("Failed to record digest delivery")
		}
	}

	runLog.WithFields(logrus.Fields{
		"sent":    result.Sent,
		"skipped": result.Skipped,
		"failed":  result.Failed,
	}).Info("Digest run finished")
	return result, nil
}

func (s *DigestService) deliver(ctx context.Context, sub *subscriber.Subscriber, render renderFunc) error {
	text, markup, err := render(sub, *sub.BirthDate)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return s.telegramClient.SendMessage(ctx, sub.TelegramID, text, &telebot.SendOptions{
		ReplyMarkup: markup,
		ParseMode:   telebot.ModeMarkdown,
	})
}
