package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/abhisek/mathwhiz/internal/llm"
)

// Purpose labels verification calls in the LLM audit log.
const Purpose = "verify-addition"

// ErrFailed is returned for every verification that did not produce a
// usable Result: transport errors, timeouts, rate limits and responses that
// do not match VerificationSchema alike. The underlying cause is wrapped.
var ErrFailed = errors.New("verification failed")

// Attempt is one answer submitted for a problem.
type Attempt struct {
	Num1    int `json:"num1"`
	Num2    int `json:"num2"`
	UserSum int `json:"userSum"`
}

// Result is the model's judgment of an Attempt.
// CorrectSum and Explanation are always present; they only matter when
// IsCorrect is false.
type Result struct {
	IsCorrect   bool   `json:"isCorrect"`
	CorrectSum  int    `json:"correctSum"`
	Explanation string `json:"explanation"`
}

// Verifier judges attempts.
type Verifier interface {
	Verify(ctx context.Context, a Attempt) (*Result, error)
}

// Config holds configuration for the verification service.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0,
	}
}

// Service is the LLM-backed Verifier. It holds no per-attempt state, so
// identical attempts produce identical, independent requests.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a Service that sends requests through provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// verificationOutput is the raw LLM response. correctSum is decoded as a
// float so that "42.0" is accepted.
type verificationOutput struct {
	IsCorrect   bool    `json:"isCorrect"`
	CorrectSum  float64 `json:"correctSum"`
	Explanation string  `json:"explanation"`
}

// maxExactSum is the largest magnitude a float64 holds without losing
// integer precision.
const maxExactSum = 1 << 53

// Verify sends one verification request. It never retries.
func (s *Service) Verify(ctx context.Context, a Attempt) (*Result, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	req, err := BuildRequest(a, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailed, err)
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailed, err)
	}

	var raw verificationOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse verification response: %w", ErrFailed, err)
	}
	if raw.CorrectSum != math.Trunc(raw.CorrectSum) {
		return nil, fmt.Errorf("%w: correctSum %v is not an integer", ErrFailed, raw.CorrectSum)
	}
	if math.Abs(raw.CorrectSum) > maxExactSum {
		return nil, fmt.Errorf("%w: correctSum %v is out of range", ErrFailed, raw.CorrectSum)
	}

	return &Result{
		IsCorrect:   raw.IsCorrect,
		CorrectSum:  int(raw.CorrectSum),
		Explanation: raw.Explanation,
	}, nil
}

// ModelID reports the model behind the service.
func (s *Service) ModelID() string {
	return s.provider.ModelID()
}
