package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/zhouzirui/speakit/backend/internal/model/analysis"
	"github.com/zhouzirui/speakit/backend/internal/model/session"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult(score int) analysis.Result {
	return analysis.Result{
		OverallScore:    score,
		Pace:            &analysis.PaceMetric{Score: score, WordsPerMinute: 155},
		Clarity:         &analysis.ClarityMetric{Score: score},
		FillerWords:     &analysis.FillerWordsMetric{Score: score, Count: 5, Types: []string{"um", "uh"}},
		Volume:          &analysis.VolumeMetric{Score: score, Consistency: "Good"},
		DurationSeconds: 90,
		Transcript:      "persisted transcript",
	}
}

func TestAppendAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	id, err := store.Append(ctx, session.Session{
		UserID:         "u1",
		Timestamp:      ts,
		Analysis:       sampleResult(84),
		AudioSizeBytes: 4096,
	})
	if err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated session id")
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.UserID != "u1" || !got.Timestamp.Equal(ts) || got.AudioSizeBytes != 4096 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Analysis.OverallScore != 84 || got.Analysis.FillerWords.Count != 5 {
		t.Fatalf("analysis mismatch: %+v", got.Analysis)
	}
	if len(got.Analysis.FillerWords.Types) != 2 {
		t.Fatalf("filler types lost in round trip: %+v", got.Analysis.FillerWords)
	}
}

func TestAppendRejectsDuplicateID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Append(ctx, session.Session{ID: "dup", UserID: "u1", Analysis: sampleResult(70)}); err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if _, err := store.Append(ctx, session.Session{ID: "dup", UserID: "u1", Analysis: sampleResult(80)}); err == nil {
		t.Fatal("expected error for duplicate session id")
	}

	sessions, err := store.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser err: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Analysis.OverallScore != 70 {
		t.Fatalf("duplicate insert must not alter stored data: %+v", sessions)
	}
}

func TestGetMissingSession(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByUserOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// 乱序时间戳写入，外加一条同时间戳记录检验平局按写入顺序
	var tieFirst, tieSecond string
	for _, offset := range []int{2, 5, 3} {
		if _, err := store.Append(ctx, session.Session{
			UserID:    "u1",
			Timestamp: base.Add(time.Duration(offset) * time.Hour),
			Analysis:  sampleResult(80),
		}); err != nil {
			t.Fatalf("Append err: %v", err)
		}
	}
	tieTS := base.Add(1 * time.Hour)
	tieFirst, _ = store.Append(ctx, session.Session{UserID: "u1", Timestamp: tieTS, Analysis: sampleResult(70)})
	tieSecond, _ = store.Append(ctx, session.Session{UserID: "u1", Timestamp: tieTS, Analysis: sampleResult(75)})

	sessions, err := store.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser err: %v", err)
	}
	if len(sessions) != 5 {
		t.Fatalf("expected 5 sessions, got %d", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].Timestamp.After(sessions[i-1].Timestamp) {
			t.Fatalf("sessions not in descending order at index %d", i)
		}
	}
	if sessions[3].ID != tieFirst || sessions[4].ID != tieSecond {
		t.Fatalf("tie order not preserved: got %s, %s", sessions[3].ID, sessions[4].ID)
	}
}

func TestListByUserFiltersUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Append(ctx, session.Session{UserID: "u1", Analysis: sampleResult(80)})
	store.Append(ctx, session.Session{UserID: "u2", Analysis: sampleResult(85)})
	store.Append(ctx, session.Session{Analysis: sampleResult(90)}) // anonymous

	sessions, err := store.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser err: %v", err)
	}
	if len(sessions) != 1 || sessions[0].UserID != "u1" {
		t.Fatalf("expected only u1 sessions, got %+v", sessions)
	}
}

func TestListByUserEmptyUserID(t *testing.T) {
	store := newTestStore(t)

	sessions, err := store.ListByUser(context.Background(), "")
	if err != nil {
		t.Fatalf("ListByUser err: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("empty user id must not match anonymous sessions, got %d", len(sessions))
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open err: %v", err)
	}
	id, err := store.Append(ctx, session.Session{UserID: "u1", Analysis: sampleResult(88)})
	if err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close err: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen err: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get after reopen err: %v", err)
	}
	if got.Analysis.OverallScore != 88 {
		t.Fatalf("data lost across reopen: %+v", got)
	}
}
