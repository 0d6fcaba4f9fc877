// Package advisor asks the language model for recommendations about an uploaded profile.
package advisor

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/benefits-advisor/internal/llm"
	"github.com/jonathan/benefits-advisor/internal/metrics"
	"github.com/jonathan/benefits-advisor/internal/prompts"
	"github.com/jonathan/benefits-advisor/internal/recommend"
	"github.com/jonathan/benefits-advisor/internal/types"
)

// FailureMarker prefixes every failure text so callers can branch on it
const FailureMarker = "❌"

// DefaultCount is how many recommendations the prompt asks for
const DefaultCount = 5

const recommendationsPrompt = "recommendations"

var errNoClient = errors.New("no model client configured")

// Advisor sends profiles to the model and extracts recommendations from replies
type Advisor struct {
	client    llm.Client
	tier      llm.ModelTier
	extractor recommend.Extractor
	metrics   *metrics.Metrics
	count     int
}

// Option configures an Advisor
type Option func(*Advisor)

// WithTier selects the model tier used for requests
func WithTier(tier llm.ModelTier) Option {
	return func(a *Advisor) { a.tier = tier }
}

// WithExtractor replaces the default bold-title extraction strategy
func WithExtractor(e recommend.Extractor) Option {
	return func(a *Advisor) {
		if e != nil {
			a.extractor = e
		}
	}
}

// WithMetrics records model latency and outcomes
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Advisor) { a.metrics = m }
}

// WithCount sets how many recommendations the prompt asks for
func WithCount(n int) Option {
	return func(a *Advisor) {
		if n > 0 {
			a.count = n
		}
	}
}

// New creates an Advisor around an explicitly provided client
func New(client llm.Client, opts ...Option) *Advisor {
	a := &Advisor{
		client:    client,
		tier:      llm.TierStandard,
		extractor: recommend.BoldTitle{},
		count:     DefaultCount,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildPrompt embeds the profile text in the recommendations prompt
func BuildPrompt(csvText string, count int) string {
	template := prompts.MustGet(prompts.AdvisorFile, recommendationsPrompt)
	return prompts.Format(template, map[string]string{
		"Count": strconv.Itoa(count),
		"CSV":   csvText,
	})
}

// FailureText renders a collaborator error as the marker-prefixed failure text
func FailureText(err error) string {
	return FailureMarker + " Gemini API error: " + err.Error()
}

// IsFailure reports whether a reply returned by Ask is a failure text
func IsFailure(text string) bool {
	return strings.HasPrefix(text, FailureMarker)
}

// Ask returns the raw model reply for the profile text. It never returns an error:
// a failed call yields FailureText, which IsFailure recognizes.
func (a *Advisor) Ask(ctx context.Context, csvText string) string {
	reply, err := a.ask(ctx, csvText)
	if err != nil {
		return FailureText(err)
	}
	return reply
}

// Recommend asks the model and extracts the recommendations from its reply.
// Collaborator failures are returned as *UpstreamError.
func (a *Advisor) Recommend(ctx context.Context, csvText string) ([]types.Recommendation, error) {
	start := time.Now()
	reply, err := a.ask(ctx, csvText)
	if err != nil {
		a.metrics.ObserveReply(time.Since(start).Seconds(), 0, true)
		return nil, &UpstreamError{Message: FailureText(err), Cause: err}
	}

	recs := a.extractor.Extract(reply)
	a.metrics.ObserveReply(time.Since(start).Seconds(), len(recs), false)
	log.Printf("[advisor] extracted %d recommendation(s) from %d-byte reply", len(recs), len(reply))
	return recs, nil
}

func (a *Advisor) ask(ctx context.Context, csvText string) (string, error) {
	if a.client == nil {
		return "", errNoClient
	}
	reply, err := a.client.GenerateContent(ctx, BuildPrompt(csvText, a.count), a.tier)
	if err != nil {
		log.Printf("[advisor] model %s failed: %v", a.client.GetModel(a.tier), err)
		return "", err
	}
	return reply, nil
}
