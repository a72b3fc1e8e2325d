package tabular

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the resolved type of a cell.
type Kind int

const (
	// KindNull marks a missing value.
	KindNull Kind = iota
	// KindNumber marks a finite floating point value.
	KindNumber
	// KindDate marks a calendar date or timestamp.
	KindDate
	// KindText marks any other non-empty value.
	KindText
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// naTokens are the strings treated as missing values, matching the default
// NA set of common dataframe readers so that exported files round-trip.
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// dateLayouts are tried in order when resolving a date cell.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
	"2006/01/02 15:04:05",
	"2006.01.02",
}

// Cell is a single typed value of a table. The zero value is a null cell.
type Cell struct {
	kind Kind
	num  float64
	at   time.Time
	raw  string
}

// Null returns a missing cell.
func Null() Cell {
	return Cell{}
}

// Number returns a numeric cell.
func Number(v float64) Cell {
	return Cell{kind: KindNumber, num: v}
}

// Text returns a text cell. An empty string yields a null cell.
func Text(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{kind: KindText, raw: s}
}

// Date returns a date cell normalized to UTC.
func Date(t time.Time) Cell {
	return Cell{kind: KindDate, at: t.UTC()}
}

// Parse resolves the type of a raw field. Surrounding spaces are ignored
// for type detection but the original text is kept for display.
func Parse(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if _, ok := naTokens[trimmed]; ok {
		return Cell{}
	}

	if v, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return Cell{kind: KindNumber, num: v, raw: trimmed}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return Cell{kind: KindDate, at: t.UTC(), raw: trimmed}
		}
	}

	return Cell{kind: KindText, raw: raw}
}

// Kind returns the resolved type of the cell.
func (c Cell) Kind() Kind {
	return c.kind
}

// IsNull reports whether the cell is missing.
func (c Cell) IsNull() bool {
	return c.kind == KindNull
}

// Float returns the numeric value. It is zero for non-numeric cells.
func (c Cell) Float() float64 {
	return c.num
}

// Time returns the date value. It is the zero time for non-date cells.
func (c Cell) Time() time.Time {
	return c.at
}

// String renders the cell the way it appeared in its source.
func (c Cell) String() string {
	if c.raw != "" {
		return c.raw
	}
	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindDate:
		if c.at.Hour() == 0 && c.at.Minute() == 0 && c.at.Second() == 0 && c.at.Nanosecond() == 0 {
			return c.at.Format("2006-01-02")
		}
		return c.at.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// MarshalJSON encodes numbers as JSON numbers, nulls as null and
// everything else as its display string.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindNull:
		return []byte("null"), nil
	case KindNumber:
		return json.Marshal(c.num)
	default:
		return json.Marshal(c.String())
	}
}

// Key is a comparable identity for a cell, suitable as a map key.
// Two cells have the same Key exactly when Equal reports true.
type Key struct {
	kind Kind
	num  float64
	sec  int64
	nsec int
	text string
}

// Key returns the identity of the cell.
func (c Cell) Key() Key {
	switch c.kind {
	case KindNumber:
		return Key{kind: KindNumber, num: c.num}
	case KindDate:
		return Key{kind: KindDate, sec: c.at.Unix(), nsec: c.at.Nanosecond()}
	case KindText:
		return Key{kind: KindText, text: c.raw}
	default:
		return Key{}
	}
}

// Equal compares two cells by resolved value. Two null cells are equal;
// cells of different kinds never are.
func Equal(a, b Cell) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindNumber:
		return a.num == b.num
	case KindDate:
		return a.at.Equal(b.at)
	default:
		return a.raw == b.raw
	}
}

// Compare orders cells naturally: null first, then numbers, dates and
// text, each ordered by value. It returns -1, 0 or +1.
func Compare(a, b Cell) int {
	if a.kind != b.kind {
		if kindRank(a.kind) < kindRank(b.kind) {
			return -1
		}
		return 1
	}
	switch a.kind {
	case KindNumber:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
	case KindDate:
		return a.at.Compare(b.at)
	case KindText:
		return strings.Compare(a.raw, b.raw)
	}
	return 0
}

func kindRank(k Kind) int {
	switch k {
	case KindNull:
		return 0
	case KindNumber:
		return 1
	case KindDate:
		return 2
	default:
		return 3
	}
}
