// Package types provides type definitions for structured data used throughout the benefits advisor.
package types

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// SectionName identifies one of the fixed sections of a profile document
type SectionName int

const (
	// PersonalInfo holds the Field/Value pairs describing the person
	PersonalInfo SectionName = iota
	// Transactions holds dated bank transactions
	Transactions
	// Investments holds the investment portfolio
	Investments
	// Benefits holds benefits and rewards available to the person
	Benefits
)

// SectionOrder is the stable order in which sections appear in a document
var SectionOrder = []SectionName{PersonalInfo, Transactions, Investments, Benefits}

var sectionTitles = map[SectionName]string{
	PersonalInfo: "Personal Info",
	Transactions: "Bank Transactions",
	Investments:  "Investment Portfolio",
	Benefits:     "Benefits / Rewards",
}

// Title returns the header text used for the section in serialized documents
func (s SectionName) Title() string {
	if title, ok := sectionTitles[s]; ok {
		return title
	}
	return "Section(" + strconv.Itoa(int(s)) + ")"
}

// String implements fmt.Stringer
func (s SectionName) String() string {
	return s.Title()
}

// SectionByTitle looks up a section by its header text
func SectionByTitle(title string) (SectionName, bool) {
	for _, name := range SectionOrder {
		if sectionTitles[name] == title {
			return name, true
		}
	}
	return 0, false
}

// Kind is the scalar type held by a Value
type Kind int

// Value kinds
const (
	KindNull Kind = iota
	KindString
	KindInt
	KindDecimal
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindDecimal:
		return "decimal"
	case KindDate:
		return "date"
	default:
		return "null"
	}
}

// DateLayout is the layout used for dates without a time component
const DateLayout = "2006-01-02"

// DateTimeLayout is the layout used for dates carrying a time component
const DateTimeLayout = "2006-01-02 15:04:05"

// Value is a typed scalar cell of a section table
type Value struct {
	kind Kind
	str  string
	i    int64
	dec  decimal.Decimal
	date time.Time
}

// Null returns the empty value
func Null() Value { return Value{} }

// StringValue wraps a string
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntValue wraps an integer
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// DecimalValue wraps a decimal
func DecimalValue(d decimal.Decimal) Value { return Value{kind: KindDecimal, dec: d} }

// DateValue wraps a date; the location is normalized to UTC
func DateValue(t time.Time) Value { return Value{kind: KindDate, date: t.UTC()} }

// Kind reports the scalar type of the value
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is empty
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the integer payload (zero for other kinds)
func (v Value) Int() int64 { return v.i }

// Decimal returns the decimal payload (zero for other kinds)
func (v Value) Decimal() decimal.Decimal { return v.dec }

// Date returns the date payload (zero for other kinds)
func (v Value) Date() time.Time { return v.date }

// String returns the textual cell form used in CSV output.
// Decimals keep their fractional digits so 120.50 stays "120.50".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindDecimal:
		if exp := v.dec.Exponent(); exp < 0 {
			return v.dec.StringFixed(-exp)
		}
		return v.dec.String()
	case KindDate:
		if v.date.Hour() == 0 && v.date.Minute() == 0 && v.date.Second() == 0 && v.date.Nanosecond() == 0 {
			return v.date.Format(DateLayout)
		}
		return v.date.Format(DateTimeLayout)
	default:
		return ""
	}
}

// Equal reports whether two values have the same kind and payload
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindInt:
		return v.i == o.i
	case KindDecimal:
		return v.dec.Equal(o.dec)
	case KindDate:
		return v.date.Equal(o.date)
	default:
		return true
	}
}

// Row is one table row, positional to the owning section's Columns
type Row []Value

// Section is a named table whose rows all share the same columns
type Section struct {
	Name    SectionName
	Columns []string
	Rows    []Row
}

// Record returns row i as a column-name keyed map
func (s *Section) Record(i int) map[string]Value {
	if i < 0 || i >= len(s.Rows) {
		return nil
	}
	rec := make(map[string]Value, len(s.Columns))
	for j, col := range s.Columns {
		if j < len(s.Rows[i]) {
			rec[col] = s.Rows[i][j]
		}
	}
	return rec
}

// Column returns the index of the named column, or -1
func (s *Section) Column(name string) int {
	for i, col := range s.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Head returns a copy of the section holding at most n rows.
// Used for display only; parsed sections always retain every row.
func (s *Section) Head(n int) Section {
	out := Section{Name: s.Name, Columns: s.Columns}
	if n < 0 || n > len(s.Rows) {
		n = len(s.Rows)
	}
	out.Rows = s.Rows[:n:n]
	return out
}

// Equal reports whether both sections hold the same columns and values
func (s *Section) Equal(o *Section) bool {
	if s.Name != o.Name || len(s.Columns) != len(o.Columns) || len(s.Rows) != len(o.Rows) {
		return false
	}
	for i := range s.Columns {
		if s.Columns[i] != o.Columns[i] {
			return false
		}
	}
	for i := range s.Rows {
		if len(s.Rows[i]) != len(o.Rows[i]) {
			return false
		}
		for j := range s.Rows[i] {
			if !s.Rows[i][j].Equal(o.Rows[i][j]) {
				return false
			}
		}
	}
	return true
}

// Document is an ordered set of sections, at most one per name
type Document struct {
	Sections []Section
}

// Section returns the named section if present
func (d *Document) Section(name SectionName) (*Section, bool) {
	for i := range d.Sections {
		if d.Sections[i].Name == name {
			return &d.Sections[i], true
		}
	}
	return nil, false
}

// Has reports whether the named section is present
func (d *Document) Has(name SectionName) bool {
	_, ok := d.Section(name)
	return ok
}

// Set inserts or replaces a section, keeping SectionOrder
func (d *Document) Set(sec Section) {
	if existing, ok := d.Section(sec.Name); ok {
		*existing = sec
		return
	}
	d.Sections = append(d.Sections, sec)
	order := make(map[SectionName]int, len(SectionOrder))
	for i, name := range SectionOrder {
		order[name] = i
	}
	// insertion sort: at most four sections
	for i := len(d.Sections) - 1; i > 0 && order[d.Sections[i].Name] < order[d.Sections[i-1].Name]; i-- {
		d.Sections[i], d.Sections[i-1] = d.Sections[i-1], d.Sections[i]
	}
}

// Names lists the present sections in order
func (d *Document) Names() []SectionName {
	names := make([]SectionName, 0, len(d.Sections))
	for _, s := range d.Sections {
		names = append(names, s.Name)
	}
	return names
}

// Equal reports whether both documents hold equal sections in the same order
func (d *Document) Equal(o *Document) bool {
	if len(d.Sections) != len(o.Sections) {
		return false
	}
	for i := range d.Sections {
		if !d.Sections[i].Equal(&o.Sections[i]) {
			return false
		}
	}
	return true
}
