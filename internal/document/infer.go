package document

import (
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/benefits-advisor/internal/types"
	"github.com/shopspring/decimal"
)

var dateLayouts = []string{types.DateLayout, types.DateTimeLayout, time.RFC3339}

// inferKind picks one kind for column j: integer, then decimal, then date, else string.
// Empty cells do not take part; a column of only empty cells stays null.
func inferKind(cells [][]string, j int) types.Kind {
	candidates := []types.Kind{types.KindInt, types.KindDecimal, types.KindDate}
	nonEmpty := 0
	for _, record := range cells {
		cell := strings.TrimSpace(record[j])
		if cell == "" {
			continue
		}
		nonEmpty++
		kept := candidates[:0]
		for _, kind := range candidates {
			if _, ok := parseAs(cell, kind); ok {
				kept = append(kept, kind)
			}
		}
		candidates = kept
		if len(candidates) == 0 {
			return types.KindString
		}
	}
	if nonEmpty == 0 {
		return types.KindNull
	}
	return candidates[0]
}

// convert builds the typed value for a cell of an already inferred column
func convert(cell string, kind types.Kind) types.Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return types.Null()
	}
	if kind == types.KindString {
		return types.StringValue(cell)
	}
	if v, ok := parseAs(trimmed, kind); ok {
		return v
	}
	return types.StringValue(cell)
}

func parseAs(cell string, kind types.Kind) (types.Value, bool) {
	switch kind {
	case types.KindInt:
		i, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return types.Value{}, false
		}
		return types.IntValue(i), true
	case types.KindDecimal:
		d, err := decimal.NewFromString(cell)
		if err != nil {
			return types.Value{}, false
		}
		return types.DecimalValue(d), true
	case types.KindDate:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, cell); err == nil {
				return types.DateValue(t), true
			}
		}
		return types.Value{}, false
	default:
		return types.Value{}, false
	}
}
