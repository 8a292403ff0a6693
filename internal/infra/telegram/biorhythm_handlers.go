package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nice_day_bot/internal/app"
	"nice_day_bot/internal/domain/biorhythm"
	"nice_day_bot/internal/domain/organclock"
	idb "nice_day_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

var markdown = &telebot.SendOptions{ParseMode: telebot.ModeMarkdown}

// replyError turns service errors into user-facing replies.
func replyError(c telebot.Context, log *logrus.Entry, err error) error {
	var dateErr *biorhythm.InvalidDateError
	switch {
	case errors.Is(err, app.ErrBirthDateNotSet):
		log.Info("Birth date not set")
		return c.Send("Please set your birth date first, for example: /birth 1991-01-01")
	case errors.Is(err, app.ErrBirthDateInFuture):
		return c.Send("Your birth date cannot be in the future.")
	case errors.Is(err, idb.ErrSubscriberNotFound):
		log.Info("Unknown subscriber")
		return c.Send("I don't know you yet. Please send /start first.")
	case errors.As(err, &dateErr):
		log.WithError(err).Info("Invalid date")
		return c.Send(fmt.Sprintf("Invalid date: %s.", dateErr.Reason))
	case errors.Is(err, biorhythm.ErrInvalidRange):
		log.WithError(err).Error("Configured range is invalid")
		return c.Send("The range is not available right now.")
	default:
		log.WithError(err).Error("Command failed")
		return c.Send("Something went wrong. Please try again later.")
	}
}

// historyMarkup offers one button per history entry.
func historyMarkup(h biorhythm.History) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(h))
	for _, d := range h {
		rows = append(rows, markup.Row(markup.Data(d.String(), app.CallbackHistoryPrefix+d.String())))
	}
	markup.Inline(rows...)
	return markup
}

// RegisterBiorhythmHandlers registers the subscriber facing commands.
func RegisterBiorhythmHandlers(
	ctx context.Context,
	b *telebot.Bot,
	subscriberService *app.SubscriberService,
	biorhythmService *app.BiorhythmService,
	organs *organclock.Schedule,
	location *time.Location,
	baseLogger *logrus.Entry,
) {
	handlerLogger := func(c telebot.Context, handler string) *logrus.Entry {
		l := baseLogger.WithFields(logrus.Fields{
			"handler":   handler,
			"sender_id": c.Sender().ID,
		})
		l.Info("Command received")
		return l
	}

	sendReading := func(c telebot.Context, log *logrus.Entry, target biorhythm.Date) error {
		report, err := biorhythmService.Reading(ctx, c.Sender().ID, target)
		if err != nil {
			return replyError(c, log, err)
		}
		return c.Send(app.FormatDailyReport(report), markdown)
	}

	b.Handle("/birth", func(c telebot.Context) error {
		log := handlerLogger(c, "/birth")
		birth, err := parseDateArg(c.Args())
		if errors.Is(err, errUsage) {
			return c.Send("Usage: /birth YYYY-MM-DD")
		}
		if err != nil {
			return replyError(c, log, err)
		}

		if _, err := subscriberService.SetBirthDate(ctx, c.Sender().ID, c.Sender().FirstName, birth); err != nil {
			return replyError(c, log, err)
		}
		log.WithField("birth_date", birth.String()).Info("Birth date saved")
		if err := c.Send(fmt.Sprintf("Birth date saved: %s. Turn on the daily digest with /digest on.", birth)); err != nil {
			return err
		}
		return sendReading(c, log, biorhythmService.Today())
	})

	b.Handle("/today", func(c telebot.Context) error {
		log := handlerLogger(c, "/today")
		return sendReading(c, log, biorhythmService.Today())
	})

	b.Handle("/date", func(c telebot.Context) error {
		log := handlerLogger(c, "/date")
		target, err := parseDateArg(c.Args())
		if errors.Is(err, errUsage) {
			return c.Send("Usage: /date YYYY-MM-DD")
		}
		if err != nil {
			return replyError(c, log, err)
		}
		return sendReading(c, log, target)
	})

	b.Handle("/month", func(c telebot.Context) error {
		log := handlerLogger(c, "/month")
		year, month, err := parseMonthArg(c.Args(), biorhythmService.Today())
		if err != nil {
			return c.Send("Usage: /month [YYYY-MM]")
		}
		extrema, err := biorhythmService.Month(ctx, c.Sender().ID, year, month)
		if err != nil {
			return replyError(c, log, err)
		}
		return c.Send(app.FormatMonthlyExtrema(extrema), markdown)
	})

	b.Handle("/year", func(c telebot.Context) error {
		log := handlerLogger(c, "/year")
		year, err := parseYearArg(c.Args(), biorhythmService.Today())
		if err != nil {
			return c.Send("Usage: /year [YYYY]")
		}
		months, err := biorhythmService.Year(ctx, c.Sender().ID, year)
		if err != nil {
			return replyError(c, log, err)
		}
		return c.Send(app.FormatYearOutlook(year, months), markdown)
	})

	b.Handle("/range", func(c telebot.Context) error {
		log := handlerLogger(c, "/range")
		center := biorhythmService.Today()
		series, err := biorhythmService.Range(ctx, c.Sender().ID, center)
		if err != nil {
			return replyError(c, log, err)
		}
		return c.Send(app.FormatSeries(series, center), markdown)
	})

	b.Handle("/history", func(c telebot.Context) error {
		log := handlerLogger(c, "/history")
		h, err := biorhythmService.History(ctx, c.Sender().ID)
		if err != nil {
			return replyError(c, log, err)
		}
		if len(h) == 0 {
			return c.Send(app.FormatHistory(h))
		}
		return c.Send(app.FormatHistory(h), &telebot.SendOptions{
			ParseMode:   telebot.ModeMarkdown,
			ReplyMarkup: historyMarkup(h),
		})
	})

	b.Handle("/organ", func(c telebot.Context) error {
		log := handlerLogger(c, "/organ")
		hour := time.Now().In(location).Hour()
		w, ok := organs.At(hour)
		if !ok {
			log.WithField("hour", hour).Error("Organ schedule has a gap")
			return c.Send("The organ clock is not available right now.")
		}
		return c.Send(app.FormatOrganWindow(w, hour), markdown)
	})

	b.Handle("/digest", func(c telebot.Context) error {
		log := handlerLogger(c, "/digest")
		enabled, err := parseDigestArg(c.Args())
		if err != nil {
			return c.Send("Usage: /digest on|off")
		}
		if _, err := subscriberService.SetDigest(ctx, c.Sender().ID, enabled); err != nil {
			return replyError(c, log, err)
		}
		log.WithField("digest_enabled", enabled).Info("Digest preference updated")
		if enabled {
			return c.Send("Daily digest is on. You will also get a monthly outlook on the 1st.")
		}
		return c.Send("Daily digest is off.")
	})
}
