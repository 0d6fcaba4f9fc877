package generator

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/benefits-advisor/internal/document"
	"github.com/jonathan/benefits-advisor/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Deterministic(t *testing.T) {
	for _, tier := range []Tier{TierDemo, TierLarge} {
		first, err := Render("Alice Johnson", 30, tier)
		require.NoError(t, err)
		second, err := Render("Alice Johnson", 30, tier)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestRender_SeedIgnoresAge(t *testing.T) {
	younger, err := GenerateProfile("Bob Smith", 42, TierDemo)
	require.NoError(t, err)
	older, err := GenerateProfile("Bob Smith", 65, TierDemo)
	require.NoError(t, err)

	for _, name := range []types.SectionName{types.Transactions, types.Investments, types.Benefits} {
		a, _ := younger.Section(name)
		b, _ := older.Section(name)
		assert.True(t, a.Equal(b), "section %s", name)
	}

	info, _ := older.Section(types.PersonalInfo)
	assert.Equal(t, "65", info.Record(1)["Value"].String())
}

func TestRender_DifferentNamesDiffer(t *testing.T) {
	alice, err := Render("Alice Johnson", 30, TierDemo)
	require.NoError(t, err)
	carol, err := Render("Carol Lee", 30, TierDemo)
	require.NoError(t, err)
	assert.NotEqual(t, alice, carol)
}

func TestSeed(t *testing.T) {
	assert.Equal(t, Seed("Alice Johnson"), Seed("Alice Johnson"))
	assert.NotEqual(t, Seed("Alice Johnson"), Seed("alice johnson"))
	// FNV-1a offset basis
	assert.Equal(t, uint64(0xcbf29ce484222325), Seed(""))
}

func TestGenerateProfile_TierRowCounts(t *testing.T) {
	tests := []struct {
		tier Tier
		want RowCounts
	}{
		{TierDemo, RowCounts{Transactions: 10, Investments: 4, Benefits: 5}},
		{TierLarge, RowCounts{Transactions: 150, Investments: 30, Benefits: 20}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			doc, err := GenerateProfile("Carol Lee", 28, tt.tier)
			require.NoError(t, err)
			assert.Equal(t, types.SectionOrder, doc.Names())

			info, _ := doc.Section(types.PersonalInfo)
			tx, _ := doc.Section(types.Transactions)
			inv, _ := doc.Section(types.Investments)
			ben, _ := doc.Section(types.Benefits)
			assert.Len(t, info.Rows, 9)
			assert.Len(t, tx.Rows, tt.want.Transactions)
			assert.Len(t, inv.Rows, tt.want.Investments)
			assert.Len(t, ben.Rows, tt.want.Benefits)
		})
	}
}

func inRange(t *testing.T, v types.Value, lo, hi float64) {
	t.Helper()
	require.Equal(t, types.KindDecimal, v.Kind())
	d := v.Decimal()
	assert.True(t, d.GreaterThanOrEqual(decimal.NewFromFloat(lo)) && d.LessThanOrEqual(decimal.NewFromFloat(hi)), "%s not in [%v, %v]", d, lo, hi)
	assert.LessOrEqual(t, -d.Exponent(), int32(2))
}

func TestGenerateProfile_ValuesInRangeAndVocabulary(t *testing.T) {
	doc, err := GenerateProfile("Alice Johnson", 30, TierLarge)
	require.NoError(t, err)

	info, _ := doc.Section(types.PersonalInfo)
	fields := make([]string, len(info.Rows))
	for i := range info.Rows {
		fields[i] = info.Record(i)["Field"].String()
	}
	assert.Equal(t, []string{
		"Name", "Age", "Monthly_Income", "Monthly_Expenses", "Primary_Bank",
		"Credit_Cards", "Loans", "Memberships", "Insurance_Policies",
	}, fields)
	assert.Equal(t, "Alice Johnson", info.Record(0)["Value"].String())
	assert.Contains(t, banks, info.Record(4)["Value"].String())
	cards := strings.Split(info.Record(5)["Value"].String(), ", ")
	assert.Len(t, cards, 3)
	for _, c := range cards {
		assert.Contains(t, creditCards, c)
	}
	assert.NotEqual(t, cards[0], cards[1])

	tx, _ := doc.Section(types.Transactions)
	assert.Equal(t, []string{"Date", "Description", "Amount", "Category"}, tx.Columns)
	for i := range tx.Rows {
		rec := tx.Record(i)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i), rec["Date"].Date())
		assert.Contains(t, transactionDescriptions, rec["Description"].String())
		assert.Contains(t, transactionCategories, rec["Category"].String())
		inRange(t, rec["Amount"], 5, 2000)
	}

	inv, _ := doc.Section(types.Investments)
	for i := range inv.Rows {
		rec := inv.Record(i)
		assert.Contains(t, investmentTypes, rec["Investment_Type"].String())
		assert.Equal(t, "TICK"+strconv.Itoa(i), rec["Ticker"].String())
		inRange(t, rec["Shares"], 1, 200)
		inRange(t, rec["Value_USD"], 100, 10000)
		inRange(t, rec["Annual_Return"], 2, 20)
	}

	ben, _ := doc.Section(types.Benefits)
	for i := range ben.Rows {
		rec := ben.Record(i)
		assert.Contains(t, benefitNames, rec["Benefit"].String())
		assert.Contains(t, benefitProviders, rec["Provider"].String())
		assert.Contains(t, benefitFrequencies, rec["Frequency"].String())
		inRange(t, rec["Estimated_Savings_USD"], 10, 500)
	}
}

func TestRender_RoundTrip(t *testing.T) {
	for _, p := range DefaultPeople {
		for _, tier := range []Tier{TierDemo, TierLarge} {
			doc, err := GenerateProfile(p.Name, p.Age, tier)
			require.NoError(t, err)

			parsed, err := document.Parse([]byte(document.Serialize(doc)))
			require.NoError(t, err)
			assert.True(t, doc.Equal(parsed), "%s/%s", p.Name, tier)
		}
	}
}

func TestRender_Format(t *testing.T) {
	content, err := Render("Alice Johnson", 30, TierDemo)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(content, "# Personal Info\nField,Value\nName,Alice Johnson\nAge,30\n"))
	assert.Contains(t, content, "\n\n# Bank Transactions\nDate,Description,Amount,Category\n2025-01-01,")
	assert.Contains(t, content, "\n\n# Investment Portfolio\nInvestment_Type,Ticker,Shares,Value_USD,Annual_Return\n")
	assert.Contains(t, content, "\n\n# Benefits / Rewards\nBenefit,Provider,Estimated_Savings_USD,Frequency\n")
}

func TestGenerateProfile_InvalidArguments(t *testing.T) {
	tests := []struct {
		name  string
		pname string
		age   int
		tier  Tier
		field string
	}{
		{"empty name", "", 30, TierDemo, "name"},
		{"blank name", "  \t", 30, TierDemo, "name"},
		{"zero age", "Alice", 0, TierDemo, "age"},
		{"negative age", "Alice", -5, TierDemo, "age"},
		{"unknown tier", "Alice", 30, Tier("huge"), "tier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := GenerateProfile(tt.pname, tt.age, tt.tier)
			assert.Nil(t, doc)
			var argErr *InvalidArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, tt.field, argErr.Field)
		})
	}
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier(" Large ")
	require.NoError(t, err)
	assert.Equal(t, TierLarge, tier)

	_, err = ParseTier("")
	var argErr *InvalidArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Contains(t, err.Error(), "unknown tier")
}
