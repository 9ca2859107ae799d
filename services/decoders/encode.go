package decoders

import (
	"strconv"
	"strings"

	"note/api/models/indexes"
)

// EncodeFixedColumns writes CHROM through FILTER back to their VCF text.
// Decoding the result yields an equal record prefix.
func EncodeFixedColumns(record *indexes.VariantRecord) []string {
	id := missingPlaceholder
	if record.Id != nil {
		id = *record.Id
	}

	return []string{
		record.Chrom,
		strconv.Itoa(record.Pos),
		id,
		record.Ref,
		strings.Join(record.Alt, ","),
		encodeQuality(record.Qual),
		encodeFilter(record.Filter),
	}
}

func encodeQuality(qual interface{}) string {
	switch q := qual.(type) {
	case int:
		return strconv.Itoa(q)
	case indexes.Float:
		text, _ := q.MarshalJSON()
		return string(text)
	default:
		return missingPlaceholder
	}
}

func encodeFilter(filter []string) string {
	switch {
	case filter == nil:
		return missingPlaceholder
	case len(filter) == 0:
		return passFilter
	default:
		return strings.Join(filter, ";")
	}
}
