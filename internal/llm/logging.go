package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abhisek/mathwhiz/internal/store"
)

// EventSink receives one audit record per LLM call.
// *store.Store's event repo satisfies it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner    Provider
	provider string
	sink     EventSink
	warnings io.Writer
}

// WithLogging wraps a Provider with event logging. providerName is the
// configured backend ("anthropic", "openai", ...) and is stored alongside
// the model ID.
func WithLogging(p Provider, providerName string, sink EventSink) Provider {
	return &LoggingProvider{inner: p, provider: providerName, sink: sink, warnings: os.Stderr}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		RoundID:     RoundFrom(ctx),
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		// Keep what the model said even when it failed validation.
		if content := failedContent(err); content != nil {
			data.ResponseBody = string(content)
		}
	}

	// The audit trail must never fail the learner's request. The caller's
	// context may already be cancelled, so write with a detached one.
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if logErr := l.sink.AppendLLMRequest(logCtx, data); logErr != nil {
		fmt.Fprintf(l.warnings, "warning: failed to log LLM request event: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func failedContent(err error) json.RawMessage {
	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		return inv.Content
	}
	var trunc *ErrMaxTokensExceeded
	if errors.As(err, &trunc) {
		return trunc.Content
	}
	return nil
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}

	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}
