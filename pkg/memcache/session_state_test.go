package mem

import (
	"context"
	"testing"
	"time"
)

func TestMemorySessionState_Draft(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessionState(time.Hour)

	if _, ok, _ := s.LoadDraft(ctx, "u1"); ok {
		t.Fatal("expected no draft for a fresh session")
	}

	_ = s.SaveDraft(ctx, "u1", []byte(`{"origin":"NYC"}`))
	got, ok, err := s.LoadDraft(ctx, "u1")
	if err != nil || !ok {
		t.Fatalf("LoadDraft: ok=%v err=%v", ok, err)
	}
	if string(got) != `{"origin":"NYC"}` {
		t.Errorf("draft = %s", got)
	}

	if _, ok, _ := s.LoadDraft(ctx, "u2"); ok {
		t.Error("draft leaked into another session")
	}

	_ = s.ClearDraft(ctx, "u1")
	if _, ok, _ := s.LoadDraft(ctx, "u1"); ok {
		t.Error("draft survived ClearDraft")
	}
}

func TestMemorySessionState_InProgressMarker(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessionState(time.Hour)

	if on, _ := s.InProgress(ctx, "u1"); on {
		t.Fatal("marker set on a fresh session")
	}
	_ = s.SetInProgress(ctx, "u1")
	if on, _ := s.InProgress(ctx, "u1"); !on {
		t.Fatal("marker not set")
	}
	_ = s.ClearInProgress(ctx, "u1")
	if on, _ := s.InProgress(ctx, "u1"); on {
		t.Fatal("marker survived ClearInProgress")
	}
}

func TestMemorySessionState_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessionState(time.Minute)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_ = s.SaveDraft(ctx, "u1", []byte("x"))
	_ = s.SetInProgress(ctx, "u1")

	now = now.Add(2 * time.Minute)

	if _, ok, _ := s.LoadDraft(ctx, "u1"); ok {
		t.Error("expired draft still returned")
	}
	if on, _ := s.InProgress(ctx, "u1"); on {
		t.Error("expired marker still set")
	}
}

func TestMemorySessionState_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessionState(time.Hour)

	buf := []byte("abc")
	_ = s.SaveDraft(ctx, "u1", buf)
	buf[0] = 'z'

	got, _, _ := s.LoadDraft(ctx, "u1")
	if string(got) != "abc" {
		t.Errorf("stored draft aliased caller buffer: %s", got)
	}
}

func TestMemorySessionState_EvictKeepsRefreshedEntry(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySessionState(time.Minute)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_ = s.SaveDraft(ctx, "u1", []byte("old"))
	now = now.Add(2 * time.Minute)

	// A save that lands between the expired read and the eviction.
	_ = s.SaveDraft(ctx, "u1", []byte("new"))
	s.evictExpired(draftPrefix + "u1")

	got, ok, _ := s.LoadDraft(ctx, "u1")
	if !ok || string(got) != "new" {
		t.Fatalf("refreshed draft evicted: ok=%v draft=%s", ok, got)
	}

	now = now.Add(2 * time.Minute)
	s.evictExpired(draftPrefix + "u1")
	s.mu.RLock()
	_, present := s.data[draftPrefix+"u1"]
	s.mu.RUnlock()
	if present {
		t.Error("expired draft not evicted")
	}
}
