package services

import (
	"testing"
	"time"

	"meridian/internal/extract"
	"meridian/internal/pagination"
	"meridian/internal/testutil"
)

func TestCreateGuest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGuestService(db)

		guest, err := svc.CreateGuest("Jamie", "Benchmark Test Partners", "GP", "", "https://pod.example.com/ep-1", "ep-1", "")
		testutil.AssertNoError(t, err)
		if guest.ID == "" {
			t.Fatal("expected non-empty guest ID")
		}
		if guest.EpisodePublishedAt != nil {
			t.Error("expected new guest episode to be unpublished")
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGuestService(db)

		_, err := svc.CreateGuest("", "", "", "", "", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListPublishedGuests(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewGuestService(db)

	testutil.CreateTestGuest(t, db)
	draft, err := svc.CreateGuest("Draft Guest", "", "", "", "", "draft-ep", "")
	testutil.AssertNoError(t, err)

	published, err := svc.ListPublishedGuests()
	testutil.AssertNoError(t, err)
	if len(published) != 1 {
		t.Fatalf("expected 1 published guest, got %d", len(published))
	}
	if published[0].ID == draft.ID {
		t.Error("draft episode should not be listed as published")
	}
}

func TestUpdateGuest(t *testing.T) {
	t.Run("applies_only_provided_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGuestService(db)

		guest := testutil.CreateTestGuest(t, db)

		firm := "Sequoia Test Capital"
		title := "Managing Partner"
		updated, err := svc.UpdateGuest(guest.ID, GuestUpdateFields{Firm: &firm, Title: &title})
		testutil.AssertNoError(t, err)
		if updated.Firm != firm {
			t.Errorf("expected firm %q, got %q", firm, updated.Firm)
		}
		if updated.Title != title {
			t.Errorf("expected title %q, got %q", title, updated.Title)
		}
		if updated.Name != guest.Name {
			t.Errorf("name should be untouched, got %q", updated.Name)
		}
	})

	t.Run("empty_name_is_ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGuestService(db)

		guest := testutil.CreateTestGuest(t, db)

		empty := ""
		updated, err := svc.UpdateGuest(guest.ID, GuestUpdateFields{Name: &empty})
		testutil.AssertNoError(t, err)
		if updated.Name != guest.Name {
			t.Errorf("expected name to remain %q, got %q", guest.Name, updated.Name)
		}
	})

	t.Run("unknown_guest", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGuestService(db)

		firm := "Nowhere Capital"
		_, err := svc.UpdateGuest("019123ab-0000-7000-8000-00000000dead", GuestUpdateFields{Firm: &firm})
		testutil.AssertAppError(t, err, "GUEST_NOT_FOUND")
	})
}

func TestUpdateGuestEpisode(t *testing.T) {
	t.Run("stores_publish_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGuestService(db)

		guest, err := svc.CreateGuest("Jamie", "", "", "", "", "ep-1", "")
		testutil.AssertNoError(t, err)

		published := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
		updated, err := svc.UpdateGuestEpisode(guest.ID, &extract.Episode{Title: "Ep 1", PublishedAt: &published})
		testutil.AssertNoError(t, err)
		if updated.EpisodePublishedAt == nil || !updated.EpisodePublishedAt.Equal(published) {
			t.Errorf("expected publish date %v, got %v", published, updated.EpisodePublishedAt)
		}
	})

	t.Run("unknown_guest", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGuestService(db)

		_, err := svc.UpdateGuestEpisode("019123ab-0000-7000-8000-00000000dead", &extract.Episode{Title: "Ep"})
		testutil.AssertAppError(t, err, "GUEST_NOT_FOUND")
	})
}

func TestDeleteGuest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewGuestService(db)

	guest := testutil.CreateTestGuest(t, db)
	testutil.AssertNoError(t, svc.DeleteGuest(guest.ID))
	testutil.AssertAppError(t, svc.DeleteGuest(guest.ID), "GUEST_NOT_FOUND")

	result, err := svc.ListGuests(pagination.PageRequest{Page: 1, PageSize: 20})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 0 {
		t.Errorf("expected no guests after delete, got %d", result.TotalItems)
	}
}
