package decoders

import (
	"strings"

	"note/api/models/indexes"
)

// DecodeSamples zips every sample column against the row's own FORMAT
// descriptor and decodes each value through the genotype registry.
func DecodeSamples(format string, columns []string, sampleNames []string) (map[string]indexes.Sample, error) {
	samples := make(map[string]indexes.Sample, len(sampleNames))

	if len(columns) != len(sampleNames) {
		return nil, structuralError("samples", "", "found %d sample columns, header declares %d", len(columns), len(sampleNames))
	}
	if len(sampleNames) == 0 {
		return samples, nil
	}
	if format == "" || format == missingPlaceholder {
		return nil, structuralError("FORMAT", format, "missing format descriptor")
	}

	// rebuilt for every row, the descriptor may differ between rows
	keys := strings.Split(format, ":")
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if _, err := GenotypeFields.Lookup(key); err != nil {
			return nil, err
		}
		if seen[key] {
			return nil, structuralError("FORMAT", format, "duplicate field %q", key)
		}
		seen[key] = true
	}

	for i, column := range columns {
		values := strings.Split(column, ":")
		if len(values) > len(keys) {
			return nil, structuralError(sampleNames[i], column, "%d values for a %d field descriptor %q", len(values), len(keys), format)
		}

		// trailing fields may be dropped, see VCF 4.3 section 1.6.2
		sample := make(indexes.Sample, len(values))
		for k, value := range values {
			decoded, err := GenotypeFields.Decode(keys[k], value)
			if err != nil {
				return nil, err
			}
			sample[keys[k]] = decoded
		}
		samples[sampleNames[i]] = sample
	}

	return samples, nil
}
