package fieldKind

import (
	"note/api/models/constants"
)

const (
	Unknown constants.FieldKind = iota

	// primitive shapes
	Integer
	Float
	String
	OptionalString

	// comma separated
	IntegerList
	FloatList

	// '|' or '/' separated genotype allele indices
	AlleleIndices

	// ANNOVAR-escaped lists (\x3b separated)
	EscapedList
	GeneList
	GeneDetail

	// gene:accession:exonN:c.*:p.* records, comma separated
	TranscriptChanges
)

func FieldKindToString(kind constants.FieldKind) string {
	switch kind {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case OptionalString:
		return "optional string"
	case IntegerList:
		return "integer list"
	case FloatList:
		return "float list"
	case AlleleIndices:
		return "allele indices"
	case EscapedList:
		return "escaped list"
	case GeneList:
		return "gene list"
	case GeneDetail:
		return "gene detail"
	case TranscriptChanges:
		return "transcript changes"
	default:
		return "unknown"
	}
}
