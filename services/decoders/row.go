package decoders

import (
	c "note/api/models/constants"
	"note/api/models/indexes"
)

// DecodeRow decodes one tab-split data row. Either the whole row decodes or
// an error is returned; there are no partial records.
func DecodeRow(fields []string, sampleNames []string) (*indexes.VariantRecord, error) {
	record, err := DecodeFixedColumns(fields)
	if err != nil {
		return nil, err
	}

	state, err := DecodeAnnotations(fields[c.MandatoryColumnCount-1])
	if err != nil {
		return nil, err
	}
	record.Info = state.Info
	record.Annotations = state.Blocks

	var (
		format  string
		columns []string
	)
	if len(fields) > c.FormatColumnIndex {
		format = fields[c.FormatColumnIndex]
		columns = fields[c.FirstSampleColumn:]
	}
	record.Samples, err = DecodeSamples(format, columns, sampleNames)
	if err != nil {
		return nil, err
	}

	return record, nil
}
