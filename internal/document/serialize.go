package document

import (
	"encoding/csv"
	"strings"

	"github.com/jonathan/benefits-advisor/internal/types"
)

// HeaderPrefix starts every section header line
const HeaderPrefix = "# "

// Serialize renders the document in the line-oriented section format:
// a "# <Title>" line, the CSV header, the rows, and one blank line between sections.
func Serialize(doc *types.Document) string {
	var sb strings.Builder
	for i := range doc.Sections {
		sec := &doc.Sections[i]
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(HeaderPrefix)
		sb.WriteString(sec.Name.Title())
		sb.WriteString("\n")

		w := csv.NewWriter(&sb)
		// strings.Builder never fails a write
		_ = w.Write(sec.Columns)
		record := make([]string, len(sec.Columns))
		for _, row := range sec.Rows {
			for j := range record {
				record[j] = ""
				if j < len(row) {
					record[j] = row[j].String()
				}
			}
			_ = w.Write(record)
		}
		w.Flush()
	}
	return sb.String()
}
