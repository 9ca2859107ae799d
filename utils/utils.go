package utils

import (
	"path/filepath"
	"strings"
)

func StringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// OutputFileName derives the converted file's name from a .vcf.gz (or
// .vcf) input name, e.g. `run1/sample.vcf.gz` -> `run1/sample.variants.json.gz`.
// The input's directory is kept so equal base names never share an output.
func OutputFileName(inputFileName string, suffix string) string {
	dir, base := filepath.Split(filepath.Clean(inputFileName))
	for _, ext := range []string{".gz", ".vcf"} {
		base = strings.TrimSuffix(base, ext)
	}
	return filepath.Join(dir, base+suffix)
}

// SplitCommaSeparated splits a comma separated list, dropping blank entries.
func SplitCommaSeparated(text string) []string {
	var items []string
	for _, item := range strings.Split(text, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
