package codec

import "strings"

// scanRecords splits delimited text into records of unquoted fields.
//
// The scanner has two states. Outside a quote, ';' ends a field, '\n' ends a
// record and '"' opens a quote. Inside a quote every byte is literal except
// '"': a doubled quote yields one literal quote, a single quote closes the
// quote. A '\r' directly before an unquoted '\n' belongs to the record
// delimiter. The final record does not need a trailing newline.
func scanRecords(text string) [][]string {
	var (
		records  [][]string
		fields   []string
		field    strings.Builder
		inQuotes bool
		started  bool
	)

	endField := func() {
		fields = append(fields, field.String())
		field.Reset()
	}
	endRecord := func() {
		endField()
		records = append(records, fields)
		fields = nil
		started = false
	}

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inQuotes {
			if c == quote {
				if i+1 < len(text) && text[i+1] == quote {
					field.WriteByte(quote)
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field.WriteByte(c)
			continue
		}

		started = true
		switch c {
		case quote:
			inQuotes = true
		case Delimiter:
			endField()
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			field.WriteByte(c)
		case '\n':
			endRecord()
		default:
			field.WriteByte(c)
		}
	}

	if started || inQuotes {
		endRecord()
	}
	return records
}
