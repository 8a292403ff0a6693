package app

import (
	"context"
	"testing"
	"time"

	"nice_day_bot/internal/domain/biorhythm"
	"nice_day_bot/internal/domain/digest"
	"nice_day_bot/internal/domain/subscriber"
	"nice_day_bot/internal/infra/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

type digestFixture struct {
	subs    *fakeSubscriberRepo
	digests *fakeDigestRepo
	client  *fakeTelegramClient
	svc     *DigestService
}

func newDigestFixture() *digestFixture {
	f := &digestFixture{
		subs:    newFakeSubscriberRepo(),
		digests: newFakeDigestRepo(),
		client:  &fakeTelegramClient{failOn: map[int64]bool{}},
	}
	f.svc = NewDigestService(f.subs, f.digests, f.client, logger.Discard())
	return f
}

func (f *digestFixture) addRecipient(t *testing.T, telegramID int64) *subscriber.Subscriber {
	t.Helper()
	s := &subscriber.Subscriber{TelegramID: telegramID, FirstName: "R", BirthDate: birth1991(), DigestEnabled: true}
	require.NoError(t, f.subs.Create(context.Background(), s))
	return s
}

// callbackUniques returns the unique part of every inline button. Telebot sends it to
// Telegram as "\f<unique>".
func callbackUniques(markup *telebot.ReplyMarkup) []string {
	var out []string
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			out = append(out, btn.Unique)
		}
	}
	return out
}

func TestDigestService_SendDaily(t *testing.T) {
	f := newDigestFixture()
	f.addRecipient(t, 10)
	f.addRecipient(t, 11)
	// Not a recipient: digest disabled.
	require.NoError(t, f.subs.Create(context.Background(), &subscriber.Subscriber{TelegramID: 12, BirthDate: birth1991()}))

	day := biorhythm.MustDate(2024, 1, 15)
	res, err := f.svc.SendDaily(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Sent)
	assert.Zero(t, res.Skipped)
	assert.Zero(t, res.Failed)

	require.Len(t, f.client.sent, 2)
	msg := f.client.sent[0]
	assert.Equal(t, int64(10), msg.chatID)
	assert.Contains(t, msg.text, "*Biorhythm for 2024-01-15*")
	assert.Equal(t, telebot.ModeMarkdown, msg.options.ParseMode)

	data := callbackUniques(msg.options.ReplyMarkup)
	require.Len(t, data, 2)
	assert.Equal(t, "month_2024-01", data[0])
	assert.Equal(t, CallbackDigestOff, data[1])

	run, err := f.digests.GetRunByDateAndType(context.Background(), day.UTC(), digest.RunTypeDaily)
	require.NoError(t, err)
	assert.Equal(t, res.RunID, run.ID)
	deliveries, err := f.digests.ListDeliveries(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Len(t, deliveries, 2)
}

func TestDigestService_SendDailyIsIdempotentPerRun(t *testing.T) {
	f := newDigestFixture()
	f.addRecipient(t, 10)
	day := biorhythm.MustDate(2024, 1, 15)

	first, err := f.svc.SendDaily(context.Background(), day)
	require.NoError(t, err)
	second, err := f.svc.SendDaily(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, first.RunID, second.RunID)
	assert.Equal(t, 0, second.Sent)
	assert.Equal(t, 1, second.Skipped)
	assert.Len(t, f.client.sent, 1)

	// A different day is a different run.
	third, err := f.svc.SendDaily(context.Background(), day.AddDays(1))
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, third.RunID)
	assert.Equal(t, 1, third.Sent)
}

func TestDigestService_FailedDeliveryIsRetried(t *testing.T) {
	f := newDigestFixture()
	sub := f.addRecipient(t, 10)
	f.client.failOn[10] = true
	day := biorhythm.MustDate(2024, 1, 15)

	res, err := f.svc.SendDaily(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)

	d, err := f.digests.GetDelivery(context.Background(), res.RunID, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, digest.DeliveryFailed, d.Status)
	assert.True(t, d.Error.Valid)

	f.client.failOn[10] = false
	res, err = f.svc.SendDaily(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)

	d, err = f.digests.GetDelivery(context.Background(), res.RunID, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, digest.DeliverySent, d.Status)
}

func TestDigestService_SendMonthlyOutlook(t *testing.T) {
	f := newDigestFixture()
	f.addRecipient(t, 10)

	res, err := f.svc.SendMonthlyOutlook(context.Background(), 2024, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)

	require.Len(t, f.client.sent, 1)
	msg := f.client.sent[0]
	assert.Contains(t, msg.text, "Outlook for January 2024")
	assert.Contains(t, msg.text, "Best day: 2024-01-28 (combined 59, Good)")
	assert.Contains(t, msg.text, "Worst day: 2024-01-15 (combined -64, Poor)")

	data := callbackUniques(msg.options.ReplyMarkup)
	require.Len(t, data, 3)
	assert.Equal(t, "hist_2024-01-28", data[0])
	assert.Equal(t, "hist_2024-01-15", data[1])

	run, err := f.digests.GetRunByDateAndType(context.Background(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), digest.RunTypeMonthly)
	require.NoError(t, err)
	assert.Equal(t, res.RunID, run.ID)
}

func TestDigestService_SendMonthlyOutlookRejectsBadMonth(t *testing.T) {
	f := newDigestFixture()
	_, err := f.svc.SendMonthlyOutlook(context.Background(), 2024, 0)
	var dateErr *biorhythm.InvalidDateError
	assert.ErrorAs(t, err, &dateErr)
}

func TestDigestService_NoRecipients(t *testing.T) {
	f := newDigestFixture()
	res, err := f.svc.SendDaily(context.Background(), biorhythm.MustDate(2024, 1, 15))
	require.NoError(t, err)
	assert.NotZero(t, res.RunID)
	assert.Zero(t, res.Sent)
	assert.Empty(t, f.client.sent)
}
