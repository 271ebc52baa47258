package master

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/korean"
)

// Sentinel errors for master loading. ErrMasterInvalid covers every malformed-
// content case (missing columns, bad rows); callers that need to distinguish a
// missing file check ErrMasterNotFound.
var (
	ErrMasterNotFound = errors.New("product master not found")
	ErrMasterInvalid  = errors.New("product master invalid")
)

// Canonical column names of the master schema.
const (
	colProduct   = "product"
	colType      = "type"
	colPayYear   = "payyear"
	colRate1     = "rate1"
	colRate2     = "rate2"
	colRate3     = "rate3"
	colStrategic = "strategic"
)

// headerAliases maps canonical columns to the accepted header spellings, both
// the Korean originals and the romanized variants seen in exported masters.
// Headers are matched after lowercasing and stripping spaces.
var headerAliases = map[string][]string{
	colProduct:   {"상품명", "product", "상품"},
	colType:      {"유형", "type", "상품유형"},
	colPayYear:   {"납기", "납입", "납입년도", "payyears", "납입년수"},
	colRate1:     {"1차년성적률", "성적률1", "rate1", "yr1", "y1"},
	colRate2:     {"2차년성적률", "성적률2", "rate2", "yr2", "y2"},
	colRate3:     {"3차년성적률", "성적률3", "rate3", "yr3", "y3"},
	colStrategic: {"전략건강여부", "전략건강", "strategic", "strategic_health", "sh"},
}

// Load reads and parses the product master file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMasterNotFound, path)
		}
		return nil, fmt.Errorf("failed to read product master %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load product master %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and parses master bytes. The file is expected in UTF-8 with an
// optional BOM; bytes that are not valid UTF-8 fall back to the legacy Korean
// code page (CP949, decoded as EUC-KR).
func Parse(data []byte) (*Table, error) {
	text, err := decodeMaster(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMasterInvalid, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", ErrMasterInvalid)
	}

	cols, err := resolveHeader(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, Row{
			Product:  field(rec, cols[colProduct]),
			Type:     field(rec, cols[colType]),
			PayYears: SplitPayYears(field(rec, cols[colPayYear])),
			Rates: RateTriple{
				Year1: parseRate(field(rec, cols[colRate1])),
				Year2: parseRate(field(rec, cols[colRate2])),
				Year3: parseRate(field(rec, cols[colRate3])),
			},
			Strategic: StrategicFlag(field(rec, cols[colStrategic])),
		})
	}
	return Build(rows)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func decodeMaster(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := korean.EUCKR.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: not valid UTF-8 or CP949", ErrMasterInvalid)
	}
	return string(decoded), nil
}

// resolveHeader maps the canonical columns onto header positions via the alias
// table. A missing required column fails the whole load.
func resolveHeader(header []string) (map[string]int, error) {
	norm := func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	}

	byAlias := make(map[string]string)
	for canonical, aliases := range headerAliases {
		for _, a := range aliases {
			byAlias[norm(a)] = canonical
		}
	}

	cols := make(map[string]int)
	for i, h := range header {
		if canonical, ok := byAlias[norm(h)]; ok {
			cols[canonical] = i
		}
	}

	var missing []string
	for canonical := range headerAliases {
		if _, ok := cols[canonical]; !ok {
			missing = append(missing, canonical)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: missing required column(s) %s", ErrMasterInvalid, strings.Join(missing, ", "))
	}
	return cols, nil
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// parseRate coerces a rate cell to a non-negative decimal; unparseable cells
// load as zero, matching the source data's treatment of blanks.
func parseRate(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
