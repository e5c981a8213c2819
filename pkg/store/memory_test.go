package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	c := NewChart(testSpec(), time.Hour)
	if err := s.Set(ctx, c); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != c.ID {
		t.Errorf("ID = %q, want %q", got.ID, c.ID)
	}
	if got.Spec.From != "2018-01-01" {
		t.Errorf("Spec.From = %q, want 2018-01-01", got.Spec.From)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreExpired(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	c := NewChart(testSpec(), time.Hour)
	c.ExpiresAt = time.Now().Add(-time.Minute)
	if err := s.Set(ctx, c); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if _, err := s.Get(ctx, c.ID); !errors.Is(err, ErrExpired) {
		t.Fatalf("Get(expired) = %v, want ErrExpired", err)
	}
	// The expired record is swept on first access.
	if _, err := s.Get(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Get = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	c := NewChart(testSpec(), time.Hour)
	if err := s.Set(ctx, c); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, c.ID); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	c := NewChart(testSpec(), time.Hour)
	if err := s.Set(ctx, c); err != nil {
		t.Fatalf("Set: %v", err)
	}
	c.Spec.Title = "updated"
	if err := s.Set(ctx, c); err != nil {
		t.Fatalf("Set again: %v", err)
	}

	got, err := s.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Spec.Title != "updated" {
		t.Errorf("Title = %q, want %q", got.Spec.Title, "updated")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestMemoryStoreSetRequiresID(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Set(context.Background(), &Chart{}); err == nil {
		t.Error("Set accepted a chart without an ID")
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	live := NewChart(testSpec(), time.Hour)
	if err := s.Set(ctx, live); err != nil {
		t.Fatalf("Set: %v", err)
	}
	for i := 0; i < 2; i++ {
		c := NewChart(testSpec(), time.Hour)
		c.ExpiresAt = time.Now().Add(-time.Minute)
		if err := s.Set(ctx, c); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	removed, err := s.Cleanup(ctx)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if removed != 2 {
		t.Errorf("Cleanup removed %d, want 2", removed)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
	if _, err := s.Get(ctx, live.ID); err != nil {
		t.Errorf("live chart gone after cleanup: %v", err)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	c := NewChart(testSpec(), time.Hour)
	if err := s.Set(ctx, c); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got.Spec.Title = "mutated"

	again, err := s.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.Spec.Title == "mutated" {
		t.Error("mutating a returned chart changed the stored record")
	}
}
