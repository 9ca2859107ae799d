package indexes

import (
	"strconv"
	"strings"

	c "note/api/models/constants"
	da "note/api/models/constants/database-alias"
)

// VariantRecord is one decoded data row of an annotated VCF.
//
// Absent values (the VCF '.' placeholder, ANNOVAR's NONE) are encoded as
// JSON null; a PASS filter is encoded as an empty list.
type VariantRecord struct {
	Chrom  string      `json:"CHROM"`
	Pos    int         `json:"POS"`
	Id     *string     `json:"ID"`
	Ref    string      `json:"REF"`
	Alt    []string    `json:"ALT"`
	Qual   interface{} `json:"QUAL"`   // int, Float, or nil
	Filter []string    `json:"FILTER"` // nil if missing, empty if PASS

	Info        map[string]interface{} `json:"INFO"`
	Annotations []AnnotationBlock      `json:"ANNOTATIONS"`
	Samples     map[string]Sample      `json:"SAMPLES"`
}

// AnnotationBlock holds one ANNOVAR gene-model pass, keyed by database alias
// and then by annotation field name.
type AnnotationBlock map[c.DatabaseAlias]map[string]interface{}

// Float is a decoded float value. It always encodes with a fractional
// part, so 37.0 is never written as the integer 37.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	s := strconv.FormatFloat(float64(f), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return []byte(s), nil
}

// Sample holds the decoded genotype fields of one sample column.
type Sample map[string]interface{}

// TranscriptChange is one entry of ANNOVAR's AAChange field,
// e.g. `BRCA1:NM_007294:exon10:c.A3113G:p.E1038G`.
type TranscriptChange struct {
	Gene       string `json:"gene"`
	Accession  string `json:"accession"`
	Exon       int    `json:"exon"`
	Transcript string `json:"transcript"`
	Protein    string `json:"protein"`
}

func NewVariantRecord() *VariantRecord {
	return &VariantRecord{
		Info:        map[string]interface{}{},
		Annotations: []AnnotationBlock{},
		Samples:     map[string]Sample{},
	}
}

// NewAnnotationBlock creates a block with every known database alias present
// and empty.
func NewAnnotationBlock() AnnotationBlock {
	block := AnnotationBlock{}
	for _, alias := range da.All() {
		block[alias] = map[string]interface{}{}
	}
	return block
}

var MAPPING_FIELDS_KEYWORD_IG256 = map[string]interface{}{
	"keyword": map[string]interface{}{
		"type":         "keyword",
		"ignore_above": 256,
	},
}
var MAPPING_TEXT = map[string]interface{}{"type": "text", "fields": MAPPING_FIELDS_KEYWORD_IG256}
var MAPPING_KEYWORD = map[string]interface{}{"type": "keyword"}
var MAPPING_LONG = map[string]interface{}{"type": "long"}
var MAPPING_FLOAT64 = map[string]interface{}{"type": "double"}
var MAPPING_FLATTENED = map[string]interface{}{"type": "flattened"}
