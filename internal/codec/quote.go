package codec

import "strings"

const (
	// Delimiter separates fields within a record.
	Delimiter = ';'
	// RecordDelimiter separates records.
	RecordDelimiter = "\n"

	quote = '"'
)

// needsQuoting reports whether a field contains the delimiter, a quote or a
// line break. A bare '\r' counts as a line break so it survives decoding.
func needsQuoting(field string) bool {
	return strings.ContainsAny(field, ";\"\n\r")
}

// quoteField wraps a field in quotes, doubling internal quotes, when it
// needs quoting. Plain fields are returned unchanged.
func quoteField(field string) string {
	if !needsQuoting(field) {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// joinRecord quotes and joins the fields of one record.
func joinRecord(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quoteField(f)
	}
	return strings.Join(quoted, string(rune(Delimiter)))
}

// joinRecords renders a header and rows as delimited text without a trailing
// record delimiter.
func joinRecords(header []string, rows [][]string) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, joinRecord(header))
	for _, row := range rows {
		lines = append(lines, joinRecord(row))
	}
	return strings.Join(lines, RecordDelimiter)
}
