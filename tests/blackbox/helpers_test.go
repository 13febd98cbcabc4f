//go:build blackbox

package blackbox

import (
	"os"
	"strings"
	"testing"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

// writeSessionCSV writes a small single-layout transaction table: a title
// line, the header, and one data row per entry.
func writeSessionCSV(t *testing.T, path string, rows []string) {
	t.Helper()

	var b strings.Builder
	b.WriteString("2330 台積電 券商買賣日報\n")
	b.WriteString("序號,券商,價格,買進股數,賣出股數\n")
	for _, r := range rows {
		b.WriteString(r)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
}
