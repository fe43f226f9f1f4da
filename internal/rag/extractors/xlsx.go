package extractors

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractXlsx renders every sheet as lines of "header: value" pairs, one row
// per line, prefixed by the sheet name. The first row of each sheet is
// treated as headers.
func extractXlsx(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}

		b.WriteString(fmt.Sprintf("Sheet: %s\n", sheet))
		headers := rows[0]
		for _, row := range rows[1:] {
			var pairs []string
			for i, header := range headers {
				val := ""
				if i < len(row) {
					val = row[i]
				}
				pairs = append(pairs, fmt.Sprintf("%s: %s", header, val))
			}
			b.WriteString(strings.Join(pairs, " | "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}
