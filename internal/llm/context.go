package llm

import "context"

type contextKey string

const (
	purposeKey contextKey = "llm_purpose"
	roundKey   contextKey = "llm_round"
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithRound tags the context with the practice round that triggered the call.
func WithRound(ctx context.Context, roundID string) context.Context {
	return context.WithValue(ctx, roundKey, roundID)
}

// RoundFrom returns the round ID attached to ctx, or "".
func RoundFrom(ctx context.Context) string {
	v, _ := ctx.Value(roundKey).(string)
	return v
}
