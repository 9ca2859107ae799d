package elasticsearch

import (
	c "note/api/models/constants"
	da "note/api/models/constants/database-alias"
	fk "note/api/models/constants/field-kind"
	"note/api/models/indexes"
	"note/api/services/decoders"

	"github.com/Jeffail/gabs"
)

// BuildVariantRecordIndexBody returns the settings and mappings used when
// creating a record index. INFO and ANNOTATIONS are mapped from the decoder
// registries so a field's type never depends on the first document indexed;
// sample columns are flattened to avoid a field per sample name.
func BuildVariantRecordIndexBody() (*gabs.Container, error) {
	body := gabs.New()

	properties := map[string]interface{}{
		"CHROM":       indexes.MAPPING_KEYWORD,
		"POS":         indexes.MAPPING_LONG,
		"ID":          indexes.MAPPING_TEXT,
		"REF":         indexes.MAPPING_TEXT,
		"ALT":         indexes.MAPPING_TEXT,
		"QUAL":        indexes.MAPPING_FLOAT64,
		"FILTER":      indexes.MAPPING_KEYWORD,
		"INFO":        registryMapping(decoders.SummaryFields, "object"),
		"ANNOTATIONS": annotationBlockMapping(),
		"SAMPLES":     indexes.MAPPING_FLATTENED,
	}
	for field, mapping := range properties {
		if _, err := body.Set(mapping, "mappings", "properties", field); err != nil {
			return nil, err
		}
	}

	if _, err := body.SetP(1, "settings.number_of_shards"); err != nil {
		return nil, err
	}
	if _, err := body.SetP("30s", "settings.refresh_interval"); err != nil {
		return nil, err
	}

	return body, nil
}

func registryMapping(registry decoders.Registry, mappingType string) map[string]interface{} {
	properties := map[string]interface{}{}
	for _, field := range registry.Fields() {
		kind, _ := registry.Lookup(field)
		properties[field] = fieldKindMapping(kind)
	}
	return map[string]interface{}{
		"type":       mappingType,
		"dynamic":    false,
		"properties": properties,
	}
}

// annotationBlockMapping maps every gene-model alias of a block to the
// annotation registry's fields.
func annotationBlockMapping() map[string]interface{} {
	aliases := map[string]interface{}{}
	for _, alias := range da.All() {
		aliases[string(alias)] = registryMapping(decoders.AnnotationFields, "object")
	}
	return map[string]interface{}{
		"type":       "nested",
		"dynamic":    false,
		"properties": aliases,
	}
}

func fieldKindMapping(kind c.FieldKind) map[string]interface{} {
	switch kind {
	case fk.Integer, fk.IntegerList, fk.AlleleIndices:
		return indexes.MAPPING_LONG
	case fk.Float, fk.FloatList:
		return indexes.MAPPING_FLOAT64
	case fk.TranscriptChanges:
		return map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"gene":       indexes.MAPPING_KEYWORD,
				"accession":  indexes.MAPPING_KEYWORD,
				"exon":       indexes.MAPPING_LONG,
				"transcript": indexes.MAPPING_KEYWORD,
				"protein":    indexes.MAPPING_KEYWORD,
			},
		}
	default:
		// GeneDetail holds either detail strings or intergenic distances
		return indexes.MAPPING_KEYWORD
	}
}
