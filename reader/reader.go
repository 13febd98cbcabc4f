// Package reader ingests the raw broker transaction CSV as published for a
// single instrument and session. The files come in several physical shapes:
// comment lines before the header, UTF-8 with or without a BOM or Big5
// (cp950) bytes, and a side-by-side layout that packs two record groups per
// line. The reader flattens all of that into ordered trade.Records and
// guarantees the core's input contract: unparsable numeric fields become
// missing values instead of failing the batch, and rows without a sequence
// number are dropped.
package reader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/traditionalchinese"

	"brokerpnl/trade"
)

// Source column headers as they appear in the raw files.
const (
	colSeq    = "序號"
	colBroker = "券商"
	colPrice  = "價格"
	colBuy    = "買進股數"
	colSell   = "賣出股數"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is the decoded, flattened session plus provenance about how the raw
// bytes were interpreted.
type Table struct {
	Records    []trade.Record
	Encoding   string // "utf-8-sig", "utf-8" or "big5"
	HeaderRow  int    // zero-based line index of the detected header
	DualColumn bool   // source used the side-by-side layout
	Dropped    int    // rows discarded for a missing sequence number
}

// ReadFile reads and flattens one raw CSV file.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read decodes, locates the header and flattens the record rows.
func Read(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	text, enc, err := decode(raw)
	if err != nil {
		return nil, err
	}

	lines := splitLines(text)
	headerRow := -1
	for i, line := range lines {
		if strings.Contains(line, colSeq) && strings.Contains(line, colBroker) {
			headerRow = i
			break
		}
	}
	if headerRow < 0 {
		return nil, fmt.Errorf("no header line containing %q and %q", colSeq, colBroker)
	}

	t := &Table{Encoding: enc, HeaderRow: headerRow}
	header := lines[headerRow]
	if strings.Count(header, colSeq) >= 2 {
		t.DualColumn = true
	}
	if t.DualColumn && strings.Contains(header, ",,") {
		err = t.flattenDual(header, lines[headerRow+1:])
	} else {
		// Single layout, or a dual layout without the empty separator
		// column; columnGroups picks up every record group either way.
		err = t.flattenSingle(lines[headerRow:])
	}
	if err != nil {
		return nil, err
	}

	trade.SortRecords(t.Records)
	return t, nil
}

// decode tries UTF-8 with BOM, then plain UTF-8, then Big5.
func decode(raw []byte) (string, string, error) {
	if bytes.HasPrefix(raw, utf8BOM) {
		return string(bytes.TrimPrefix(raw, utf8BOM)), "utf-8-sig", nil
	}
	if utf8.Valid(raw) {
		return string(raw), "utf-8", nil
	}
	decoded, err := traditionalchinese.Big5.NewDecoder().Bytes(raw)
	if err != nil {
		return "", "", fmt.Errorf("undecodable input (tried utf-8 and big5): %w", err)
	}
	return string(decoded), "big5", nil
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// flattenDual handles the side-by-side layout: two record groups per line,
// separated by an empty column. Halves whose sequence cell is empty are
// padding on short pages and are skipped.
func (t *Table) flattenDual(header string, dataLines []string) error {
	parts := strings.SplitN(header, ",,", 2)
	if len(parts) != 2 {
		return fmt.Errorf("dual-column header without a group separator: %q", header)
	}
	cols := trimAll(strings.Split(parts[0], ","))
	idx, err := columnIndex(cols)
	if err != nil {
		return err
	}

	for _, line := range dataLines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		halves := strings.SplitN(line, ",,", 2)
		if len(halves) != 2 {
			continue
		}
		for _, half := range halves {
			cells := trimAll(strings.Split(half, ","))
			if len(cells) != len(cols) || cells[0] == "" {
				continue
			}
			t.appendRecord(cells, idx)
		}
	}
	return nil
}

// flattenSingle parses a standard one-group CSV starting at the header line.
func (t *Table) flattenSingle(lines []string) error {
	r := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return err
	}
	groups, err := columnGroups(trimAll(header))
	if err != nil {
		return err
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if len(row) == 0 {
			continue
		}
		cells := trimAll(row)
		for _, idx := range groups {
			t.appendRecord(cells, idx)
		}
	}
}

type columns struct {
	seq, broker, price, buy, sell int
}

// columnIndex maps one group's header names to cell positions.
func columnIndex(header []string) (columns, error) {
	groups, err := columnGroups(header)
	if err != nil {
		return columns{}, err
	}
	return groups[0], nil
}

// columnGroups finds every record group in a header row. A new group starts
// at each 序號 column, so the side-by-side layout yields two groups.
func columnGroups(header []string) ([]columns, error) {
	var groups []columns
	cur := -1
	add := func() {
		groups = append(groups, columns{seq: -1, broker: -1, price: -1, buy: -1, sell: -1})
		cur = len(groups) - 1
	}
	for i, name := range header {
		if name == colSeq {
			add()
		}
		if cur < 0 {
			continue
		}
		g := &groups[cur]
		switch name {
		case colSeq:
			g.seq = i
		case colBroker:
			g.broker = i
		case colPrice:
			g.price = i
		case colBuy:
			g.buy = i
		case colSell:
			g.sell = i
		}
	}
	if len(groups) == 0 || groups[0].broker < 0 {
		return nil, fmt.Errorf("header missing %q or %q: %v", colSeq, colBroker, header)
	}
	return groups, nil
}

func (t *Table) appendRecord(cells []string, idx columns) {
	seq := parseNumber(cell(cells, idx.seq))
	if trade.Missing(seq) {
		t.Dropped++
		return
	}
	t.Records = append(t.Records, trade.Record{
		Seq:     int64(seq),
		Broker:  cleanLabel(cell(cells, idx.broker)),
		Price:   parseNumber(cell(cells, idx.price)),
		BuyQty:  parseNumber(cell(cells, idx.buy)),
		SellQty: parseNumber(cell(cells, idx.sell)),
	})
}

func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

// parseNumber coerces a source cell to a float, NaN on failure. Thousands
// separators are tolerated.
func parseNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// cleanLabel strips every space rune, including full-width U+3000, from a
// broker label.
func cleanLabel(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
