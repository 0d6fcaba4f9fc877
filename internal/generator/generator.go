package generator

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/benefits-advisor/internal/document"
	"github.com/jonathan/benefits-advisor/internal/types"
	"github.com/shopspring/decimal"
)

// transactionsStart is the date of the first generated transaction
var transactionsStart = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// pcgStream is the fixed second PCG word; only the name varies the stream
const pcgStream = 0x9e3779b97f4a7c15

// Seed derives the random seed for a person from their name alone.
// Two ages for the same name share a seed and therefore share generated data.
func Seed(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

// GenerateProfile builds the four-section profile for a person.
// The result depends only on name and tier, so repeated calls are identical.
func GenerateProfile(name string, age int, tier Tier) (*types.Document, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &InvalidArgumentError{Field: "name", Message: "must not be empty"}
	}
	if age <= 0 {
		return nil, &InvalidArgumentError{Field: "age", Message: fmt.Sprintf("must be positive, got %d", age)}
	}
	counts, ok := tier.Rows()
	if !ok {
		return nil, &InvalidArgumentError{Field: "tier", Message: fmt.Sprintf("unknown tier %q", tier)}
	}

	g := &sampler{rng: rand.New(rand.NewPCG(Seed(name), pcgStream))}

	doc := &types.Document{}
	doc.Set(g.personalInfo(name, age))
	doc.Set(g.transactions(counts.Transactions))
	doc.Set(g.investments(counts.Investments))
	doc.Set(g.benefits(counts.Benefits))
	return doc, nil
}

// Render generates a profile and serializes it to the section text format
func Render(name string, age int, tier Tier) (string, error) {
	doc, err := GenerateProfile(name, age, tier)
	if err != nil {
		return "", err
	}
	return document.Serialize(doc), nil
}

// sampler draws section values from one deterministic stream.
// Draw order is part of the output contract: columns are filled one at a time.
type sampler struct {
	rng *rand.Rand
}

func (g *sampler) choice(vocab []string) string {
	return vocab[g.rng.IntN(len(vocab))]
}

// distinct picks n different entries from vocab
func (g *sampler) distinct(vocab []string, n int) []string {
	perm := g.rng.Perm(len(vocab))
	out := make([]string, n)
	for i := range out {
		out[i] = vocab[perm[i]]
	}
	return out
}

// intBetween returns an integer in [lo, hi)
func (g *sampler) intBetween(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo)
}

// amount returns a value uniformly drawn from [lo, hi] rounded to cents
func (g *sampler) amount(lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(lo + g.rng.Float64()*(hi-lo)).Round(2)
}

func (g *sampler) personalInfo(name string, age int) types.Section {
	fields := []struct {
		field string
		value string
	}{
		{"Name", name},
		{"Age", strconv.Itoa(age)},
		{"Monthly_Income", strconv.Itoa(g.intBetween(4000, 12000))},
		{"Monthly_Expenses", strconv.Itoa(g.intBetween(2000, 9000))},
		{"Primary_Bank", g.choice(banks)},
		{"Credit_Cards", strings.Join(g.distinct(creditCards, 3), ", ")},
		{"Loans", strings.Join(g.distinct(loans, 2), ", ")},
		{"Memberships", strings.Join(g.distinct(memberships, 4), ", ")},
		{"Insurance_Policies", strings.Join(g.distinct(insurance, 2), ", ")},
	}

	rows := make([]types.Row, len(fields))
	for i, f := range fields {
		// the Value column mixes names and numbers, so every cell is text
		rows[i] = types.Row{types.StringValue(f.field), types.StringValue(f.value)}
	}
	return types.Section{Name: types.PersonalInfo, Columns: personalInfoColumns, Rows: rows}
}

func (g *sampler) transactions(n int) types.Section {
	rows := newRows(n, len(transactionColumns))
	for i := range rows {
		rows[i][0] = types.DateValue(transactionsStart.AddDate(0, 0, i))
	}
	for i := range rows {
		rows[i][1] = types.StringValue(g.choice(transactionDescriptions))
	}
	for i := range rows {
		rows[i][2] = types.DecimalValue(g.amount(5, 2000))
	}
	for i := range rows {
		rows[i][3] = types.StringValue(g.choice(transactionCategories))
	}
	return types.Section{Name: types.Transactions, Columns: transactionColumns, Rows: rows}
}

func (g *sampler) investments(n int) types.Section {
	rows := newRows(n, len(investmentColumns))
	for i := range rows {
		rows[i][0] = types.StringValue(g.choice(investmentTypes))
	}
	for i := range rows {
		rows[i][1] = types.StringValue("TICK" + strconv.Itoa(i))
	}
	for i := range rows {
		rows[i][2] = types.DecimalValue(g.amount(1, 200))
	}
	for i := range rows {
		rows[i][3] = types.DecimalValue(g.amount(100, 10000))
	}
	for i := range rows {
		rows[i][4] = types.DecimalValue(g.amount(2, 20))
	}
	return types.Section{Name: types.Investments, Columns: investmentColumns, Rows: rows}
}

func (g *sampler) benefits(n int) types.Section {
	rows := newRows(n, len(benefitColumns))
	for i := range rows {
		rows[i][0] = types.StringValue(g.choice(benefitNames))
	}
	for i := range rows {
		rows[i][1] = types.StringValue(g.choice(benefitProviders))
	}
	for i := range rows {
		rows[i][2] = types.DecimalValue(g.amount(10, 500))
	}
	for i := range rows {
		rows[i][3] = types.StringValue(g.choice(benefitFrequencies))
	}
	return types.Section{Name: types.Benefits, Columns: benefitColumns, Rows: rows}
}

func newRows(n, width int) []types.Row {
	rows := make([]types.Row, n)
	for i := range rows {
		rows[i] = make(types.Row, width)
	}
	return rows
}
