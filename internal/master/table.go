package master

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// RateTriple holds the three year-rates for one (product, type, payyear)
// combination, in percent units (0-100).
type RateTriple struct {
	Year1 decimal.Decimal `json:"rate1"`
	Year2 decimal.Decimal `json:"rate2"`
	Year3 decimal.Decimal `json:"rate3"`
}

// IsZero reports whether all three rates are zero.
func (r RateTriple) IsZero() bool {
	return r.Year1.IsZero() && r.Year2.IsZero() && r.Year3.IsZero()
}

// Row is one canonical master-data row as produced by the loader. PayYears
// already carries the split labels (a source cell may encode several).
type Row struct {
	Product   string
	Type      string
	PayYears  []string
	Rates     RateTriple
	Strategic bool
}

type typeRates struct {
	payYears  []string
	rates     map[string]RateTriple
	strategic bool
}

// Table is the immutable product-rate master lookup. Built once at load time
// and read-only thereafter, so it may be shared freely across sessions.
type Table struct {
	products  map[string]map[string]*typeRates
	strategic map[string]bool
	rows      int
}

// payYearSplitter breaks a multi-label payyear cell into individual labels.
var payYearSplitter = regexp.MustCompile(`[,/\s]+`)

// SplitPayYears splits a raw payyear cell into labels. An empty cell maps to
// the catch-all label.
func SplitPayYears(raw string) []string {
	var out []string
	for _, p := range payYearSplitter.Split(strings.TrimSpace(raw), -1) {
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = []string{"기타"}
	}
	return out
}

// strategicTruthy are the source tokens that mark a product as a strategic
// health product, compared case-insensitively.
var strategicTruthy = map[string]bool{"Y": true, "YES": true, "1": true, "TRUE": true}

// StrategicFlag reports whether a raw strategic-health cell is truthy.
func StrategicFlag(raw string) bool {
	return strategicTruthy[strings.ToUpper(strings.TrimSpace(raw))]
}

// Build constructs a Table from canonical rows. A row with an empty product or
// type name invalidates the whole table: the master loads all-or-nothing.
// Duplicate (product, type, payyear) keys resolve last-write-wins.
func Build(rows []Row) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrMasterInvalid)
	}

	t := &Table{
		products:  make(map[string]map[string]*typeRates),
		strategic: make(map[string]bool),
	}
	for i, row := range rows {
		name := strings.TrimSpace(row.Product)
		typ := strings.TrimSpace(row.Type)
		if name == "" || typ == "" {
			return nil, fmt.Errorf("%w: row %d is missing product or type", ErrMasterInvalid, i+1)
		}

		types, ok := t.products[name]
		if !ok {
			types = make(map[string]*typeRates)
			t.products[name] = types
		}
		tr, ok := types[typ]
		if !ok {
			tr = &typeRates{rates: make(map[string]RateTriple)}
			types[typ] = tr
		}

		for _, py := range row.PayYears {
			if _, seen := tr.rates[py]; !seen {
				tr.payYears = append(tr.payYears, py)
			}
			tr.rates[py] = row.Rates
		}
		if row.Strategic {
			tr.strategic = true
			t.strategic[name] = true
		}
		t.rows++
	}

	// Quasi-numeric label order: "5년" before "10년" without parsing numbers.
	// Length is counted in characters, not bytes, so Hangul labels like
	// "기타" keep their two-character rank ahead of "10년".
	for _, types := range t.products {
		for _, tr := range types {
			sort.Slice(tr.payYears, func(i, j int) bool {
				a, b := tr.payYears[i], tr.payYears[j]
				la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
				if la != lb {
					return la < lb
				}
				return a < b
			})
		}
	}
	return t, nil
}

// Lookup returns the rate triple for (product, type, payyear), or a zero triple
// when the key is absent. A miss is a recoverable no-data case, not an error:
// front-end edits can transiently hold stale combinations.
func (t *Table) Lookup(product, typ, payYear string) RateTriple {
	types, ok := t.products[product]
	if !ok {
		return RateTriple{}
	}
	tr, ok := types[typ]
	if !ok {
		return RateTriple{}
	}
	return tr.rates[payYear]
}

// Products returns all product names sorted.
func (t *Table) Products() []string {
	out := make([]string, 0, len(t.products))
	for name := range t.products {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Types returns the type names of a product, sorted. Nil for unknown products.
func (t *Table) Types(product string) []string {
	types, ok := t.products[product]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(types))
	for typ := range types {
		out = append(out, typ)
	}
	sort.Strings(out)
	return out
}

// PayYears returns the payyear labels of a (product, type) in their
// length-then-lexicographic order. Nil for unknown combinations.
func (t *Table) PayYears(product, typ string) []string {
	types, ok := t.products[product]
	if !ok {
		return nil
	}
	tr, ok := types[typ]
	if !ok {
		return nil
	}
	return tr.payYears
}

// IsStrategic reports whether the product is flagged as a strategic health
// product in any of its types.
func (t *Table) IsStrategic(product string) bool {
	return t.strategic[product]
}

// StrategicProducts returns the strategic product names sorted.
func (t *Table) StrategicProducts() []string {
	out := make([]string, 0, len(t.strategic))
	for name := range t.strategic {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of source rows the table was built from.
func (t *Table) Len() int {
	return t.rows
}
