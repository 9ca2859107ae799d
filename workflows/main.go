package workflows

import (
	"regexp"

	c "note/api/models/constants"
	da "note/api/models/constants/database-alias"
	"note/api/services/decoders"
)

type WorkflowSchema map[string]interface{}

// ConversionWorkflowSchema describes the conversion run for workflow
// runners: its inputs and the fields the records are decoded with.
func ConversionWorkflowSchema(outputSuffix string) WorkflowSchema {
	return WorkflowSchema{
		"conversion": map[string]interface{}{
			"vcf_gz": map[string]interface{}{
				"name":        "Annotated VCF to JSON lines",
				"description": "This workflow converts an ANNOVAR-annotated, gzip compressed VCF into gzip compressed JSON lines, one variant record per line.",
				"data_type":   "variant",
				"tags":        []string{"variant", "annovar"},
				"type":        "conversion",
				"inputs": []map[string]interface{}{
					{
						"id":       "vcf_gz_file_names",
						"type":     "file[]",
						"required": true,
						"pattern":  "^.*\\.vcf\\.gz$",
					},
					{
						"id":       "index",
						"type":     "boolean",
						"required": false,
					},
				},
				"outputs": []map[string]interface{}{
					{
						"id":      "variants_json_gz",
						"type":    "file",
						"pattern": "^.*" + regexp.QuoteMeta(outputSuffix) + "$",
					},
				},
				"fields": map[string]interface{}{
					"info":             decoders.SummaryFields.Fields(),
					"annotations":      decoders.AnnotationFields.Fields(),
					"samples":          decoders.GenotypeFields.Fields(),
					"databases":        da.All(),
					"annotationMarker": c.AnnotationBlockMarker,
				},
			},
		},
	}
}
