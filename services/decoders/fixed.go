package decoders

import (
	"strconv"
	"strings"

	c "note/api/models/constants"
	"note/api/models/indexes"
)

const passFilter = "PASS"

// DecodeFixedColumns decodes CHROM through FILTER into a fresh record.
// INFO and everything after it are left to the other decoders.
func DecodeFixedColumns(fields []string) (*indexes.VariantRecord, error) {
	if len(fields) < c.MandatoryColumnCount {
		return nil, structuralError("row", "", "found %d columns, expected at least %d", len(fields), c.MandatoryColumnCount)
	}

	record := indexes.NewVariantRecord()

	// -- chrom
	if fields[0] == "" {
		return nil, structuralError("CHROM", fields[0], "empty chromosome")
	}
	record.Chrom = fields[0]

	// -- pos
	pos, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, valueShapeError("POS", fields[1], unwrapNumError(err))
	}
	if pos < 1 {
		return nil, structuralError("POS", fields[1], "position must be at least 1")
	}
	record.Pos = pos

	// -- id
	if fields[2] != missingPlaceholder {
		id := fields[2]
		record.Id = &id
	}

	// -- ref
	if fields[3] == "" {
		return nil, structuralError("REF", fields[3], "empty reference allele")
	}
	record.Ref = fields[3]

	// -- alt
	record.Alt = strings.Split(fields[4], ",")
	for _, alt := range record.Alt {
		if alt == "" {
			return nil, structuralError("ALT", fields[4], "empty alternate allele")
		}
	}

	// -- qual
	record.Qual = decodeQuality(fields[5])

	// -- filter
	record.Filter = decodeFilter(fields[6])

	return record, nil
}

// decodeQuality prefers an integer, then a float; anything else
// (including '.') is absent.
func decodeQuality(raw string) interface{} {
	if q, err := strconv.Atoi(raw); err == nil {
		return q
	}
	if q, err := parseFiniteFloat(raw); err == nil {
		return indexes.Float(q)
	}
	return nil
}

func decodeFilter(raw string) []string {
	switch raw {
	case missingPlaceholder:
		return nil
	case passFilter:
		return []string{}
	default:
		return strings.Split(raw, ";")
	}
}
