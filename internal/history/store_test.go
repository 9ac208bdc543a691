// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

package history

import (
	"context"
	"testing"
	"time"

	"github.com/dramatlas/dramatlas/internal/recommend"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("", time.Hour, true)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

func TestAppendAndListByUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := &Record{
		Username: "alice",
		Count:    3,
		Recommendations: []recommend.Recommendation{
			{BottleID: "b1", Name: "Islay Storm", Score: 0.91},
		},
	}
	if err := s.Append(ctx, rec); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if rec.ID == "" {
		t.Error("Append() did not assign an ID")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Append() did not assign CreatedAt")
	}

	records, err := s.ListByUser(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].Username != "alice" || records[0].Count != 3 {
		t.Errorf("record = %+v, want alice count 3", records[0])
	}
	if len(records[0].Recommendations) != 1 || records[0].Recommendations[0].BottleID != "b1" {
		t.Errorf("Recommendations = %+v, want single b1", records[0].Recommendations)
	}
}

func TestListByUserNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := &Record{
			Username:  "alice",
			Count:     i + 1,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.Append(ctx, rec); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	records, err := s.ListByUser(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	wantCounts := []int{3, 2, 1}
	for i, want := range wantCounts {
		if records[i].Count != want {
			t.Errorf("records[%d].Count = %d, want %d (newest first)", i, records[i].Count, want)
		}
	}
}

func TestListByUserLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.Append(ctx, &Record{Username: "alice"}); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	records, err := s.ListByUser(ctx, "alice", 2)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(records) != 2 {
		t.Errorf("len(records) = %d, want 2", len(records))
	}
}

func TestListByUserIsolation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, &Record{Username: "alice"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := s.Append(ctx, &Record{Username: "alicia"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	records, err := s.ListByUser(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1 (prefix must not match alicia)", len(records))
	}
	if records[0].Username != "alice" {
		t.Errorf("Username = %q, want alice", records[0].Username)
	}
}

func TestListByUserEmpty(t *testing.T) {
	s := openTestStore(t)

	records, err := s.ListByUser(context.Background(), "nobody", 10)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func TestAppendCancelledContext(t *testing.T) {
	s := openTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Append(ctx, &Record{Username: "alice"}); err == nil {
		t.Error("Append() = nil error with cancelled context")
	}
}
