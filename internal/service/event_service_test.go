package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/iconidentify/blogsmith/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEventService_Emit(t *testing.T) {
	svc, err := NewEventService(EventServiceConfig{RingBufferSize: 10}, testLogger())
	if err != nil {
		t.Fatalf("failed to create event service: %v", err)
	}
	defer svc.Close()

	svc.EmitInfo(domain.EventCategoryContent, "test", "test message", domain.EventMetadata{
		"topic": "go",
	})

	events := svc.GetRecent(10)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Message != "test message" {
		t.Errorf("expected message 'test message', got '%s'", events[0].Message)
	}
	if events[0].Category != domain.EventCategoryContent {
		t.Errorf("expected category content, got %s", events[0].Category)
	}
	if events[0].Severity != domain.EventSeverityInfo {
		t.Errorf("expected severity info, got %s", events[0].Severity)
	}
	if events[0].ID == "" {
		t.Error("expected a generated event ID")
	}
	if events[0].Timestamp.IsZero() {
		t.Error("expected a timestamp")
	}
}

func TestEventService_RingBuffer(t *testing.T) {
	svc, err := NewEventService(EventServiceConfig{RingBufferSize: 5}, testLogger())
	if err != nil {
		t.Fatalf("failed to create event service: %v", err)
	}
	defer svc.Close()

	for i := 0; i < 10; i++ {
		svc.EmitInfo(domain.EventCategorySystem, "test", fmt.Sprintf("message %d", i), nil)
	}

	events := svc.GetRecent(10)
	if len(events) != 5 {
		t.Fatalf("expected 5 events (ring buffer size), got %d", len(events))
	}
	if events[0].Message != "message 9" {
		t.Errorf("expected first event to be 'message 9', got '%s'", events[0].Message)
	}
	if events[4].Message != "message 5" {
		t.Errorf("expected last event to be 'message 5', got '%s'", events[4].Message)
	}
}

func TestEventService_Query_Filter(t *testing.T) {
	svc, err := NewEventService(EventServiceConfig{RingBufferSize: 100}, testLogger())
	if err != nil {
		t.Fatalf("failed to create event service: %v", err)
	}
	defer svc.Close()

	svc.EmitSuccess(domain.EventCategoryContent, "content", "content generated", nil)
	svc.EmitError(domain.EventCategoryTrending, "trending", "trending topics failed", nil)
	svc.EmitWarning(domain.EventCategoryConfig, "startup", "model credential not configured", nil)
	svc.EmitInfo(domain.EventCategorySystem, "server", "server started", nil)

	errorSev := domain.EventSeverityError
	result, err := svc.Query(context.Background(), domain.EventQuery{
		Filter: domain.EventFilter{Severity: &errorSev},
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(result.Events) != 1 || result.Events[0].Message != "trending topics failed" {
		t.Errorf("severity filter returned %+v", result.Events)
	}

	contentCat := domain.EventCategoryContent
	result, err = svc.Query(context.Background(), domain.EventQuery{
		Filter: domain.EventFilter{Category: &contentCat},
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(result.Events) != 1 {
		t.Errorf("expected 1 content event, got %d", len(result.Events))
	}

	result, err = svc.Query(context.Background(), domain.EventQuery{
		Filter: domain.EventFilter{SearchText: "CREDENTIAL"},
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(result.Events) != 1 {
		t.Errorf("expected 1 search match, got %d", len(result.Events))
	}

	result, err = svc.Query(context.Background(), domain.EventQuery{
		Filter: domain.EventFilter{Source: "server"},
	})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(result.Events) != 1 {
		t.Errorf("expected 1 source match, got %d", len(result.Events))
	}
}

func TestEventService_Query_Pagination(t *testing.T) {
	svc, err := NewEventService(EventServiceConfig{RingBufferSize: 100}, testLogger())
	if err != nil {
		t.Fatalf("failed to create event service: %v", err)
	}
	defer svc.Close()

	for i := 0; i < 25; i++ {
		svc.EmitInfo(domain.EventCategorySystem, "test", fmt.Sprintf("event %d", i), nil)
	}

	result, err := svc.Query(context.Background(), domain.EventQuery{Limit: 10})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(result.Events) != 10 || result.Total != 25 || !result.HasMore {
		t.Errorf("page 1: len=%d total=%d hasMore=%v", len(result.Events), result.Total, result.HasMore)
	}

	result, err = svc.Query(context.Background(), domain.EventQuery{Limit: 10, Offset: 20})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(result.Events) != 5 || result.HasMore {
		t.Errorf("page 3: len=%d hasMore=%v", len(result.Events), result.HasMore)
	}

	result, err = svc.Query(context.Background(), domain.EventQuery{Offset: 100})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(result.Events) != 0 {
		t.Errorf("offset past end returned %d events", len(result.Events))
	}
}

func TestEventService_Concurrent(t *testing.T) {
	svc, err := NewEventService(EventServiceConfig{RingBufferSize: 50}, testLogger())
	if err != nil {
		t.Fatalf("failed to create event service: %v", err)
	}
	defer svc.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				svc.EmitInfo(domain.EventCategorySystem, "test", fmt.Sprintf("g%d-%d", n, j), nil)
				_ = svc.GetRecent(5)
			}
		}(i)
	}
	wg.Wait()

	if got := svc.Stats().BufferUsed; got != 50 {
		t.Errorf("BufferUsed = %d, want 50", got)
	}
}

func TestEventService_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "events.db")
	svc, err := NewEventService(EventServiceConfig{RingBufferSize: 10, SQLitePath: dbPath, RetentionDays: 7}, testLogger())
	if err != nil {
		t.Fatalf("failed to create event service: %v", err)
	}

	svc.EmitSuccess(domain.EventCategoryContent, "content", "content generated", domain.EventMetadata{"topic": "go"})
	svc.EmitError(domain.EventCategoryTrending, "trending", "trending topics failed", nil)
	svc.Emit(domain.Event{
		Timestamp: time.Now().UTC().AddDate(0, 0, -30),
		Severity:  domain.EventSeverityInfo,
		Category:  domain.EventCategorySystem,
		Message:   "old event",
	})
	if err := svc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopen to read what was flushed.
	svc, err = NewEventService(EventServiceConfig{RingBufferSize: 10, SQLitePath: dbPath, RetentionDays: 7}, testLogger())
	if err != nil {
		t.Fatalf("failed to reopen event service: %v", err)
	}
	defer svc.Close()

	ctx := context.Background()
	result, err := svc.QueryHistorical(ctx, domain.EventQuery{})
	if err != nil {
		t.Fatalf("QueryHistorical() error = %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("Total = %d, want 3", result.Total)
	}

	contentCat := domain.EventCategoryContent
	result, err = svc.QueryHistorical(ctx, domain.EventQuery{Filter: domain.EventFilter{Category: &contentCat}})
	if err != nil {
		t.Fatalf("QueryHistorical() error = %v", err)
	}
	if len(result.Events) != 1 || string(result.Events[0].Metadata) != `{"topic":"go"}` {
		t.Errorf("category query returned %+v", result.Events)
	}

	if err := svc.CleanupOldEvents(ctx); err != nil {
		t.Fatalf("CleanupOldEvents() error = %v", err)
	}
	result, err = svc.QueryHistorical(ctx, domain.EventQuery{})
	if err != nil {
		t.Fatalf("QueryHistorical() error = %v", err)
	}
	if result.Total != 2 {
		t.Errorf("Total after cleanup = %d, want 2", result.Total)
	}
	if !svc.Stats().SQLiteEnabled {
		t.Error("Stats().SQLiteEnabled should be true")
	}
}

func TestEventService_QueryHistorical_NoDB(t *testing.T) {
	svc, err := NewEventService(DefaultEventServiceConfig(), testLogger())
	if err != nil {
		t.Fatalf("failed to create event service: %v", err)
	}
	defer svc.Close()

	result, err := svc.QueryHistorical(context.Background(), domain.EventQuery{})
	if err != nil {
		t.Fatalf("QueryHistorical() error = %v", err)
	}
	if len(result.Events) != 0 {
		t.Errorf("expected no events without persistence, got %d", len(result.Events))
	}
	if err := svc.CleanupOldEvents(context.Background()); err != nil {
		t.Errorf("CleanupOldEvents() error = %v", err)
	}
}

func TestEventService_EmitAfterClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "events.db")
	svc, err := NewEventService(EventServiceConfig{RingBufferSize: 10, SQLitePath: dbPath}, testLogger())
	if err != nil {
		t.Fatalf("failed to create event service: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("emit after Close panicked: %v", r)
		}
	}()
	svc.EmitError(domain.EventCategoryContent, "ContentService", "content generation failed", nil)
	svc.EmitSuccess(domain.EventCategoryContent, "ContentService", "Blog content generated", nil)

	if got := len(svc.GetRecent(10)); got != 2 {
		t.Errorf("GetRecent() returned %d events, want 2", got)
	}
	if err := svc.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
