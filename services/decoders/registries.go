package decoders

import (
	"fmt"
	"sort"

	c "note/api/models/constants"
	fk "note/api/models/constants/field-kind"
)

// Registry maps field names to decode kinds. Registries are closed: a name
// that is not registered is an error, never a silent skip.
type Registry struct {
	name   string
	fields map[string]c.FieldKind
}

var (
	// GenotypeFields decodes FORMAT/sample values.
	GenotypeFields = Registry{
		name: "genotype",
		fields: map[string]c.FieldKind{
			"DP":  fk.Integer,
			"AD":  fk.IntegerList,
			"PL":  fk.IntegerList,
			"GT":  fk.AlleleIndices,
			"PGT": fk.AlleleIndices,
			"PID": fk.String,
			"GQ":  fk.Integer,
			"PS":  fk.Integer,
		},
	}

	// SummaryFields decodes the INFO keys written by the variant caller,
	// before the first annotation block.
	SummaryFields = Registry{
		name: "summary-statistics",
		fields: map[string]c.FieldKind{
			"AC":             fk.IntegerList,
			"AF":             fk.FloatList,
			"AN":             fk.Integer,
			"BaseQRankSum":   fk.Float,
			"DP":             fk.Integer,
			"ExcessHet":      fk.Float,
			"FS":             fk.Float,
			"MLEAC":          fk.IntegerList,
			"MLEAF":          fk.FloatList,
			"MQ":             fk.Float,
			"MQRankSum":      fk.Float,
			"QD":             fk.Float,
			"ReadPosRankSum": fk.Float,
			"SOR":            fk.Float,
		},
	}

	// AnnotationFields decodes the `<field>.<alias>` keys written by
	// table_annovar's gene-based ('g') operation.
	AnnotationFields = Registry{
		name: "annotation",
		fields: map[string]c.FieldKind{
			"Func":       fk.EscapedList,
			"Gene":       fk.GeneList,
			"GeneDetail": fk.GeneDetail,
			"ExonicFunc": fk.OptionalString,
			"AAChange":   fk.TranscriptChanges,
		},
	}
)

func (r Registry) Name() string {
	return r.name
}

// Lookup returns the decode kind registered for field.
func (r Registry) Lookup(field string) (c.FieldKind, error) {
	kind, ok := r.fields[field]
	if !ok {
		return fk.Unknown, unregisteredFieldError(r.name, field, "")
	}
	return kind, nil
}

// Decode looks field up and decodes raw with its registered kind.
func (r Registry) Decode(field string, raw string) (interface{}, error) {
	kind, ok := r.fields[field]
	if !ok {
		return nil, unregisteredFieldError(r.name, field, raw)
	}
	value, err := DecodeValue(kind, raw)
	if err != nil {
		return nil, valueShapeError(field, raw, fmt.Errorf("expected %s: %w", fk.FieldKindToString(kind), unwrapNumError(err)))
	}
	return value, nil
}

// Fields lists the registered field names in sorted order.
func (r Registry) Fields() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
