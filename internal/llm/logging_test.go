package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/abhisek/mathwhiz/internal/store"
)

type recordingSink struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (s *recordingSink) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, data)
	return s.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	sink := &recordingSink{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"ok":true}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 4, TotalTokens: 16},
	})
	p := WithLogging(mock, ProviderMock, sink)

	ctx := WithRound(WithPurpose(context.Background(), "verify-addition"), "round-7")
	_, err := p.Generate(ctx, Request{
		System:   "sys",
		Messages: []Message{UserMessage("40 + 2 = 42?")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(sink.events))
	}
	ev := sink.events[0]
	if !ev.Success || ev.ErrorMessage != "" {
		t.Fatalf("expected success event, got %+v", ev)
	}
	if ev.RoundID != "round-7" || ev.Purpose != "verify-addition" {
		t.Fatalf("context labels not recorded: %+v", ev)
	}
	if ev.Provider != ProviderMock || ev.Model != "mock" {
		t.Fatalf("unexpected provider/model: %q/%q", ev.Provider, ev.Model)
	}
	if ev.InputTokens != 12 || ev.OutputTokens != 4 {
		t.Fatalf("unexpected tokens: %d/%d", ev.InputTokens, ev.OutputTokens)
	}
	if ev.ResponseBody != `{"ok":true}` {
		t.Fatalf("unexpected response body: %q", ev.ResponseBody)
	}
	if !strings.Contains(ev.RequestBody, "[system]\nsys") || !strings.Contains(ev.RequestBody, "40 + 2 = 42?") {
		t.Fatalf("request body missing prompt: %q", ev.RequestBody)
	}
}

func TestLogging_RecordsInvalidContent(t *testing.T) {
	sink := &recordingSink{}
	mock := NewMockProvider(MockResponse{
		Err: &ErrInvalidResponse{Content: json.RawMessage(`{"isCorrect":"maybe"}`), Err: errors.New("bad type")},
	})
	p := WithLogging(mock, ProviderMock, sink)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}

	ev := sink.events[0]
	if ev.Success {
		t.Fatal("expected failure event")
	}
	if ev.ResponseBody != `{"isCorrect":"maybe"}` {
		t.Fatalf("expected rejected content to be kept, got %q", ev.ResponseBody)
	}
	if ev.ErrorMessage == "" {
		t.Fatal("expected error message")
	}
}

func TestLogging_SinkFailureDoesNotFailCall(t *testing.T) {
	sink := &recordingSink{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	var warn bytes.Buffer
	p := &LoggingProvider{inner: mock, provider: ProviderMock, sink: sink, warnings: &warn}

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("sink failure leaked into the call: %v", err)
	}
	if !strings.Contains(warn.String(), "disk full") {
		t.Fatalf("expected a warning, got %q", warn.String())
	}
}
