// Package recommend turns free-text model replies into recommendation records.
//
// Extraction is a best-effort heuristic over text the model formats as it likes,
// so extractors never fail: unrecognizable input yields an empty list.
package recommend

import (
	"fmt"
	"strings"

	"github.com/jonathan/benefits-advisor/internal/types"
)

// Extractor converts a model reply into at most types.MaxRecommendations records,
// in the order they appear in the reply.
type Extractor interface {
	Extract(text string) []types.Recommendation
}

// Strategy names accepted by ByName
const (
	StrategyBold     = "bold"
	StrategyMarkdown = "markdown"
)

// ByName returns the extractor registered under name; "" selects the bold strategy
func ByName(name string) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyBold:
		return BoldTitle{}, nil
	case StrategyMarkdown:
		return NewMarkdown(), nil
	default:
		return nil, fmt.Errorf("unknown extraction strategy %q (expected %q or %q)", name, StrategyBold, StrategyMarkdown)
	}
}

// Extract runs the default BoldTitle strategy
func Extract(text string) []types.Recommendation {
	return BoldTitle{}.Extract(text)
}

const boldToken = "**"

// BoldTitle treats a line wrapped in "**" as a title and the lines after it
// as that recommendation's description:
//
//	**Use your cashback card for groceries**
//	Switching saves roughly $25 per month.
type BoldTitle struct{}

// Extract implements Extractor
func (BoldTitle) Extract(text string) []types.Recommendation {
	var c collector
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isTitleMarker(line) {
			c.open(titleText(line), "")
			continue
		}
		c.describe(line)
	}
	return c.finish()
}

// isTitleMarker requires text between the tokens, so "****" is not a title
func isTitleMarker(line string) bool {
	return len(line) > 2*len(boldToken) &&
		strings.HasPrefix(line, boldToken) &&
		strings.HasSuffix(line, boldToken)
}

func titleText(line string) string {
	inner := line[len(boldToken) : len(line)-len(boldToken)]
	return strings.TrimSpace(strings.Trim(inner, "*"))
}

// collector accumulates (title, description lines) pairs.
// Description lines seen before the first title are dropped.
type collector struct {
	recs    []types.Recommendation
	title   string
	desc    []string
	started bool
}

func (c *collector) open(title, firstLine string) {
	c.flush()
	c.title = title
	c.desc = c.desc[:0]
	c.started = true
	if firstLine != "" {
		c.desc = append(c.desc, firstLine)
	}
}

func (c *collector) describe(line string) {
	if !c.started || line == "" {
		return
	}
	c.desc = append(c.desc, line)
}

func (c *collector) flush() {
	if !c.started {
		return
	}
	c.recs = append(c.recs, types.Recommendation{
		Title:       c.title,
		Description: strings.Join(c.desc, " "),
	})
	c.started = false
}

func (c *collector) finish() []types.Recommendation {
	c.flush()
	if c.recs == nil {
		return []types.Recommendation{}
	}
	if len(c.recs) > types.MaxRecommendations {
		c.recs = c.recs[:types.MaxRecommendations]
	}
	return c.recs
}
