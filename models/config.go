package models

type Config struct {
	Debug          bool   `yaml:"debug" envconfig:"NOTE_DEBUG"`
	SemVer         string `yaml:"semver" envconfig:"NOTE_SERVICE_SEMVER" default:"0.9.0"`
	ServiceContact string `yaml:"serviceContact" envconfig:"NOTE_SERVICE_CONTACT"`

	Api struct {
		Url                            string `yaml:"url" envconfig:"NOTE_PUBLIC_URL"`
		Port                           string `yaml:"port" envconfig:"NOTE_API_INTERNAL_PORT" default:"5000"`
		VcfPath                        string `yaml:"vcfPath" envconfig:"NOTE_API_VCF_PATH"`
		OutputPath                     string `yaml:"outputPath" envconfig:"NOTE_API_OUTPUT_PATH"`
		FileProcessingConcurrencyLevel int    `yaml:"fileProcessingConcurrencyLevel" envconfig:"NOTE_API_FILE_PROC_CONC_LVL" default:"2"`
		MaxLineBytes                   int    `yaml:"maxLineBytes" envconfig:"NOTE_API_MAX_LINE_BYTES" default:"16777216"`
	} `yaml:"api"`

	Conversion struct {
		OutputSuffix           string `yaml:"outputSuffix" envconfig:"NOTE_CONVERSION_OUTPUT_SUFFIX" default:".variants.json.gz"`
		IndexIntoElasticsearch bool   `yaml:"indexIntoElasticsearch" envconfig:"NOTE_CONVERSION_INDEX_INTO_ES"`
	} `yaml:"conversion"`

	Elasticsearch struct {
		Url             string `yaml:"url" envconfig:"NOTE_ES_URL"`
		Username        string `yaml:"username" envconfig:"NOTE_ES_USERNAME"`
		Password        string `yaml:"password" envconfig:"NOTE_ES_PASSWORD"`
		IndexPrefix     string `yaml:"indexPrefix" envconfig:"NOTE_ES_INDEX_PREFIX" default:"annotated-variants"`
		BulkIndexingCap int    `yaml:"bulkIndexingCap" envconfig:"NOTE_ES_BULK_INDEXING_CAP" default:"10000"`
		MaxRetries      int    `yaml:"maxRetries" envconfig:"NOTE_ES_MAX_RETRIES" default:"5"`
	} `yaml:"elasticsearch"`

	Sanitation struct {
		At             string `yaml:"at" envconfig:"NOTE_SANITATION_AT" default:"04:00:00"`
		RetentionHours int    `yaml:"retentionHours" envconfig:"NOTE_SANITATION_RETENTION_HOURS" default:"72"`
	} `yaml:"sanitation"`
}
