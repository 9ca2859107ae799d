package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout the converter and its
	associated services.
*/
type DatabaseAlias string
type FieldKind int
type ConversionState string

// column names of the eight mandatory VCF columns followed by FORMAT
var VcfHeaders = []string{"chrom", "pos", "id", "ref", "alt", "qual", "filter", "info", "format"}

const (
	MetaInformationPrefix = "##"
	ColumnHeaderPrefix    = "#CHROM"

	MandatoryColumnCount = 8
	FormatColumnIndex    = 8
	FirstSampleColumn    = 9
)

// ANNOVAR writes one ANNOVAR_DATE key per gene-model pass, followed by the
// pass's `<field>.<alias>` keys, and closes each alternate allele with a
// bare ALLELE_END flag.
const (
	AnnotationBlockMarker = "ANNOVAR_DATE"
	AlleleEndMarker       = "ALLELE_END"
)
