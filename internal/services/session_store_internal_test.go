package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"pminternship/internship-ai/internal/models"
)

func TestMemorySessionStore_SweepsExpiredOnSave(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := &memorySessionStore{
		ttl:      time.Millisecond,
		sessions: make(map[string]memoryEntry),
		now:      func() time.Time { return now },
	}
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		if err := store.Save(ctx, models.NewSession("s-"+strconv.Itoa(i), now)); err != nil {
			t.Fatal(err)
		}
	}
	if len(store.sessions) != 1000 {
		t.Fatalf("held %d sessions before expiry", len(store.sessions))
	}

	now = now.Add(time.Second)
	store.Save(ctx, models.NewSession("last", now))

	if len(store.sessions) != 1 {
		t.Fatalf("held %d sessions after all but one expired", len(store.sessions))
	}
	if _, ok := store.sessions["last"]; !ok {
		t.Fatal("fresh session swept")
	}
}

func TestMemorySessionStore_SweepIntervalIsCapped(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := &memorySessionStore{
		ttl:      24 * time.Hour,
		sessions: make(map[string]memoryEntry),
		now:      func() time.Time { return now },
	}

	store.Save(context.Background(), models.NewSession("s-1", now))
	if want := now.Add(maxSweepInterval); !store.nextSweep.Equal(want) {
		t.Fatalf("next sweep = %v, want %v", store.nextSweep, want)
	}
}
