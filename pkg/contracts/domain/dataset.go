package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expected journal-entry columns. Every one of them is optional.
const (
	ColumnEffectiveDate   = "EffectiveDate"
	ColumnAmount          = "Amount"
	ColumnGLAccountNumber = "GLAccountNumber"
	ColumnSource          = "Source"
	ColumnBusinessUnit    = "BusinessUnit"
	ColumnAccountType     = "AccountType"
)

// ValueKind identifies what a cell holds after loading.
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindText
	KindNumber
	KindDate
	KindBool
)

// String returns the kind name used in logs.
func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindBool:
		return "bool"
	default:
		return "empty"
	}
}

// Value is a single typed cell of a journal-entry export.
type Value struct {
	Kind   ValueKind       `json:"kind"`
	Text   string          `json:"text,omitempty"`
	Number decimal.Decimal `json:"number,omitempty"`
	Time   time.Time       `json:"time,omitempty"`
	Bool   bool            `json:"bool,omitempty"`
}

// EmptyValue returns a missing cell.
func EmptyValue() Value { return Value{Kind: KindEmpty} }

// TextValue returns a text cell. The text is kept verbatim; trimming is the cleaner's job.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// NumberValue returns a numeric cell.
func NumberValue(d decimal.Decimal) Value { return Value{Kind: KindNumber, Number: d} }

// DateValue returns a date or date-time cell.
func DateValue(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

// BoolValue returns a boolean cell.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IsEmpty reports whether the cell carries no value. A text cell holding only
// whitespace is not empty until it has been cleaned.
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty
}

// IsBlank reports whether the cell is missing or holds an empty string.
func (v Value) IsBlank() bool {
	return v.Kind == KindEmpty || (v.Kind == KindText && v.Text == "")
}

// HasTimeOfDay reports whether a date cell carries a non-midnight time component.
func (v Value) HasTimeOfDay() bool {
	if v.Kind != KindDate {
		return false
	}
	h, m, s := v.Time.Clock()
	return h != 0 || m != 0 || s != 0 || v.Time.Nanosecond() != 0
}

// String renders the value the way it appears in report tables.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return v.Number.String()
	case KindDate:
		if v.HasTimeOfDay() {
			return v.Time.Format("2006-01-02 15:04:05")
		}
		return v.Time.Format("2006-01-02")
	case KindBool:
		if v.Bool {
			return "True"
		}
		return "False"
	default:
		return ""
	}
}

// Key returns a canonical identity for distinct-value counting. Values of
// different kinds never collide, so the number 1000 and the text "1000" differ.
func (v Value) Key() string {
	return v.Kind.String() + ":" + v.String()
}

// Record maps a column name to its cell.
type Record map[string]Value

// Get returns the cell for column, or an empty value when the record lacks it.
func (r Record) Get(column string) Value {
	if v, ok := r[column]; ok {
		return v
	}
	return EmptyValue()
}

// Dataset is the tabular content of one input file.
type Dataset struct {
	Source  string   `json:"source"`
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// HasColumn reports whether the dataset carries the named column.
func (d *Dataset) HasColumn(name string) bool {
	if d == nil {
		return false
	}
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Column returns every cell of the named column in record order.
func (d *Dataset) Column(name string) []Value {
	if !d.HasColumn(name) {
		return nil
	}
	values := make([]Value, len(d.Records))
	for i, r := range d.Records {
		values[i] = r.Get(name)
	}
	return values
}

// Clone returns a deep copy of the dataset's records and columns.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := &Dataset{
		Source:  d.Source,
		Columns: append([]string(nil), d.Columns...),
		Records: make([]Record, len(d.Records)),
	}
	for i, r := range d.Records {
		cp := make(Record, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out.Records[i] = cp
	}
	return out
}
