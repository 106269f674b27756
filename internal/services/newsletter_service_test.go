package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"meridian/internal/clients/audience"
	"meridian/internal/mail"
	"meridian/internal/pagination"
	"meridian/internal/testutil"
)

// captureSender records sent mail for assertions.
type captureSender struct {
	mu   sync.Mutex
	sent []string // recipient addresses in send order
	fail bool
}

func (c *captureSender) Send(_ context.Context, to, _, _, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return context.DeadlineExceeded
	}
	c.sent = append(c.sent, to)
	return nil
}

func (c *captureSender) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

var _ mail.Sender = (*captureSender)(nil)

func newAudienceServer(t *testing.T, status int) (*audience.Client, *int) {
	t.Helper()
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return audience.NewClient(srv.URL, "test-key", "list-1", srv.Client()), &calls
}

func TestSubscribe(t *testing.T) {
	t.Run("stores_pushes_and_welcomes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		client, calls := newAudienceServer(t, http.StatusCreated)
		sender := &captureSender{}
		svc := NewNewsletterService(db, client, sender, "https://meridian.vc")

		sub, err := svc.Subscribe(context.Background(), "reader@test.com", "homepage")
		testutil.AssertNoError(t, err)

		if sub.Email != "reader@test.com" {
			t.Errorf("unexpected subscriber email %s", sub.Email)
		}
		if *calls != 1 {
			t.Errorf("expected 1 provider call, got %d", *calls)
		}
		if sender.count() != 1 {
			t.Errorf("expected 1 welcome email, got %d", sender.count())
		}
	})

	t.Run("provider_failure_fails_subscription", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		client, _ := newAudienceServer(t, http.StatusInternalServerError)
		svc := NewNewsletterService(db, client, &captureSender{}, "https://meridian.vc")

		_, err := svc.Subscribe(context.Background(), "reader@test.com", "")
		testutil.AssertAppError(t, err, "SUBSCRIBE_FAILED")
	})

	t.Run("mail_failure_fails_subscription", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		client, _ := newAudienceServer(t, http.StatusCreated)
		svc := NewNewsletterService(db, client, &captureSender{fail: true}, "https://meridian.vc")

		_, err := svc.Subscribe(context.Background(), "reader@test.com", "")
		testutil.AssertAppError(t, err, "SUBSCRIBE_FAILED")
	})

	t.Run("resubscribe_revives_unsubscribed_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		client, _ := newAudienceServer(t, http.StatusOK)
		svc := NewNewsletterService(db, client, &captureSender{}, "https://meridian.vc")

		existing := testutil.CreateTestSubscriber(t, db)
		testutil.AssertNoError(t, svc.Unsubscribe(context.Background(), existing.Email))

		sub, err := svc.Subscribe(context.Background(), existing.Email, "footer")
		testutil.AssertNoError(t, err)
		if sub.ID != existing.ID {
			t.Errorf("expected existing row %s to be revived, got %s", existing.ID, sub.ID)
		}
		if sub.UnsubscribedAt != nil {
			t.Error("expected unsubscribed_at to be cleared")
		}
	})

	t.Run("empty_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		client, _ := newAudienceServer(t, http.StatusOK)
		svc := NewNewsletterService(db, client, &captureSender{}, "https://meridian.vc")

		_, err := svc.Subscribe(context.Background(), "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUnsubscribe(t *testing.T) {
	t.Run("unknown_subscriber", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		client, _ := newAudienceServer(t, http.StatusOK)
		svc := NewNewsletterService(db, client, &captureSender{}, "https://meridian.vc")

		err := svc.Unsubscribe(context.Background(), "nobody@test.com")
		testutil.AssertAppError(t, err, "SUBSCRIBER_NOT_FOUND")
	})

	t.Run("provider_failure_does_not_fail_unsubscribe", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		client, _ := newAudienceServer(t, http.StatusInternalServerError)
		svc := NewNewsletterService(db, client, &captureSender{}, "https://meridian.vc")

		existing := testutil.CreateTestSubscriber(t, db)
		testutil.AssertNoError(t, svc.Unsubscribe(context.Background(), existing.Email))
	})
}

func TestListSubscribers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	client, _ := newAudienceServer(t, http.StatusOK)
	svc := NewNewsletterService(db, client, &captureSender{}, "https://meridian.vc")

	testutil.CreateTestSubscriber(t, db)
	testutil.CreateTestSubscriber(t, db)

	result, err := svc.ListSubscribers(pagination.PageRequest{Page: 1, PageSize: 20})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 2 {
		t.Errorf("expected 2 subscribers, got %d", result.TotalItems)
	}
}
