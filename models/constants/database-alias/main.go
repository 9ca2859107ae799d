package databaseAlias

import (
	"note/api/models/constants"
)

const (
	RefGene   constants.DatabaseAlias = "refGene"
	EnsGene   constants.DatabaseAlias = "ensGene"
	KnownGene constants.DatabaseAlias = "knownGene"
)

// All returns the gene-model databases passed to table_annovar's
// --protocol option, in protocol order.
func All() []constants.DatabaseAlias {
	return []constants.DatabaseAlias{RefGene, EnsGene, KnownGene}
}

func CastToDatabaseAlias(text string) (constants.DatabaseAlias, bool) {
	for _, alias := range All() {
		if string(alias) == text {
			return alias, true
		}
	}
	return "", false
}
