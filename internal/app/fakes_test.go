package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"nice_day_bot/internal/domain/digest"
	"nice_day_bot/internal/domain/subscriber"
	idb "nice_day_bot/internal/infra/database"

	"gopkg.in/telebot.v3"
)

type fakeSubscriberRepo struct {
	mu        sync.Mutex
	nextID    int64
	byID      map[int64]*subscriber.Subscriber
	updateErr error
}

func newFakeSubscriberRepo() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{byID: map[int64]*subscriber.Subscriber{}}
}

func clone(s *subscriber.Subscriber) *subscriber.Subscriber {
	c := *s
	if s.BirthDate != nil {
		b := *s.BirthDate
		c.BirthDate = &b
	}
	c.History = append(c.History[:0:0], s.History...)
	return &c
}

func (r *fakeSubscriberRepo) Create(_ context.Context, s *subscriber.Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.TelegramID == s.TelegramID {
			return idb.ErrDuplicateTelegramID
		}
	}
	r.nextID++
	s.ID = r.nextID
	r.byID[s.ID] = clone(s)
	return nil
}

func (r *fakeSubscriberRepo) GetByID(_ context.Context, id int64) (*subscriber.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, idb.ErrSubscriberNotFound
	}
	return clone(s), nil
}

func (r *fakeSubscriberRepo) GetByTelegramID(_ context.Context, telegramID int64) (*subscriber.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byID {
		if s.TelegramID == telegramID {
			return clone(s), nil
		}
	}
	return nil, idb.ErrSubscriberNotFound
}

func (r *fakeSubscriberRepo) Update(_ context.Context, s *subscriber.Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[s.ID]; !ok {
		return idb.ErrSubscriberNotFound
	}
	r.byID[s.ID] = clone(s)
	return nil
}

func (r *fakeSubscriberRepo) sorted(keep func(*subscriber.Subscriber) bool) []*subscriber.Subscriber {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*subscriber.Subscriber
	for _, s := range r.byID {
		if keep(s) {
			out = append(out, clone(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeSubscriberRepo) ListDigestRecipients(_ context.Context) ([]*subscriber.Subscriber, error) {
	return r.sorted(func(s *subscriber.Subscriber) bool { return s.DigestEnabled && s.HasBirthDate() }), nil
}

func (r *fakeSubscriberRepo) ListAll(_ context.Context) ([]*subscriber.Subscriber, error) {
	return r.sorted(func(*subscriber.Subscriber) bool { return true }), nil
}

type deliveryKey struct{ run, sub int64 }

type fakeDigestRepo struct {
	mu         sync.Mutex
	runs       []*digest.Run
	deliveries map[deliveryKey]*digest.Delivery
}

func newFakeDigestRepo() *fakeDigestRepo {
	return &fakeDigestRepo{deliveries: map[deliveryKey]*digest.Delivery{}}
}

func (r *fakeDigestRepo) CreateRun(_ context.Context, run *digest.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.runs {
		if existing.RunDate.Equal(run.RunDate) && existing.Type == run.Type {
			return idb.ErrDuplicateDigestRun
		}
	}
	run.ID = int64(len(r.runs) + 1)
	run.CreatedAt = time.Now()
	c := *run
	r.runs = append(r.runs, &c)
	return nil
}

func (r *fakeDigestRepo) GetRunByDateAndType(_ context.Context, runDate time.Time, runType digest.RunType) (*digest.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.runs {
		if existing.RunDate.Equal(runDate) && existing.Type == runType {
			c := *existing
			return &c, nil
		}
	}
	return nil, idb.ErrDigestRunNotFound
}

func (r *fakeDigestRepo) RecordDelivery(_ context.Context, d *digest.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *d
	r.deliveries[deliveryKey{d.RunID, d.SubscriberID}] = &c
	return nil
}

func (r *fakeDigestRepo) GetDelivery(_ context.Context, runID, subscriberID int64) (*digest.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deliveries[deliveryKey{runID, subscriberID}]
	if !ok {
		return nil, idb.ErrDeliveryNotFound
	}
	c := *d
	return &c, nil
}

func (r *fakeDigestRepo) ListDeliveries(_ context.Context, runID int64) ([]*digest.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*digest.Delivery
	for k, d := range r.deliveries {
		if k.run == runID {
			c := *d
			out = append(out, &c)
		}
	}
	return out, nil
}

type sentMessage struct {
	chatID  int64
	text    string
	options *telebot.SendOptions
}

type fakeTelegramClient struct {
	mu     sync.Mutex
	sent   []sentMessage
	failOn map[int64]bool
}

func (c *fakeTelegramClient) SendMessage(_ context.Context, chatID int64, text string, options *telebot.SendOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failOn[chatID] {
		return errors.New("forbidden: bot was blocked by the user")
	}
	c.sent = append(c.sent, sentMessage{chatID: chatID, text: text, options: options})
	return nil
}
