package decoders

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	c "note/api/models/constants"
	fk "note/api/models/constants/field-kind"
	"note/api/models/indexes"
)

const (
	missingPlaceholder = "."
	nonePlaceholder    = "NONE"
	unknownPlaceholder = "UNKNOWN"

	// ANNOVAR cannot write ';' or '=' inside an INFO value, so it writes
	// their hex escapes literally
	escapedSemicolon = `\x3b`
	escapedEquals    = `\x3d`
	distanceMarker   = "dist" + escapedEquals

	exonPrefix       = "exon"
	transcriptPrefix = "c."
	proteinPrefix    = "p."

	transcriptChangeFieldCount = 5
)

var alleleSeparators = regexp.MustCompile(`[|/]`)

// DecodeValue converts a raw token into the typed value described by kind.
// A nil value with a nil error means the token was a placeholder.
func DecodeValue(kind c.FieldKind, raw string) (interface{}, error) {
	switch kind {
	case fk.Integer:
		if raw == missingPlaceholder {
			return nil, nil
		}
		return strconv.Atoi(raw)

	case fk.Float:
		if raw == missingPlaceholder {
			return nil, nil
		}
		v, err := parseFiniteFloat(raw)
		if err != nil {
			return nil, err
		}
		return indexes.Float(v), nil

	case fk.String:
		return raw, nil

	case fk.OptionalString:
		if raw == missingPlaceholder {
			return nil, nil
		}
		return raw, nil

	case fk.IntegerList:
		if raw == missingPlaceholder {
			return nil, nil
		}
		return decodeIntegerList(raw)

	case fk.FloatList:
		if raw == missingPlaceholder {
			return nil, nil
		}
		return decodeFloatList(raw)

	case fk.AlleleIndices:
		return decodeAlleleIndices(raw)

	case fk.EscapedList:
		return strings.Split(raw, escapedSemicolon), nil

	case fk.GeneList:
		return decodeGeneList(raw), nil

	case fk.GeneDetail:
		return decodeGeneDetail(raw)

	case fk.TranscriptChanges:
		if raw == missingPlaceholder || raw == unknownPlaceholder {
			return nil, nil
		}
		return decodeTranscriptChanges(raw)

	default:
		return nil, fmt.Errorf("no decoder for %s fields", fk.FieldKindToString(kind))
	}
}

func decodeIntegerList(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func decodeFloatList(raw string) ([]indexes.Float, error) {
	parts := strings.Split(raw, ",")
	values := make([]indexes.Float, 0, len(parts))
	for _, part := range parts {
		v, err := parseFiniteFloat(part)
		if err != nil {
			return nil, err
		}
		values = append(values, indexes.Float(v))
	}
	return values, nil
}

// parseFiniteFloat rejects NaN and infinities, which have no JSON encoding.
func parseFiniteFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}

// decodeAlleleIndices splits a GT/PGT value on either phasing separator.
// No-call alleles ('.') decode to nil entries.
func decodeAlleleIndices(raw string) ([]*int, error) {
	parts := alleleSeparators.Split(raw, -1)
	alleles := make([]*int, 0, len(parts))
	for _, part := range parts {
		if part == missingPlaceholder {
			alleles = append(alleles, nil)
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if v < 0 {
			return nil, fmt.Errorf("negative allele index %d", v)
		}
		alleles = append(alleles, &v)
	}
	return alleles, nil
}

func decodeGeneList(raw string) []*string {
	parts := strings.Split(raw, escapedSemicolon)
	genes := make([]*string, 0, len(parts))
	for i := range parts {
		if parts[i] == nonePlaceholder {
			genes = append(genes, nil)
			continue
		}
		genes = append(genes, &parts[i])
	}
	return genes
}

// decodeGeneDetail handles the three GeneDetail payloads: '.', a list of
// transcript-level details, or intergenic distances such as
// `dist\x3d1234\x3bdist\x3dNONE`.
func decodeGeneDetail(raw string) (interface{}, error) {
	if raw == missingPlaceholder {
		return nil, nil
	}
	if !strings.Contains(raw, distanceMarker) {
		return strings.Split(raw, escapedSemicolon), nil
	}

	pairs := strings.Split(raw, escapedSemicolon)
	distances := make([]*int, 0, len(pairs))
	for _, pair := range pairs {
		_, value, found := strings.Cut(pair, escapedEquals)
		if !found {
			return nil, fmt.Errorf("distance entry %q is not a key=value pair", pair)
		}
		if value == nonePlaceholder {
			distances = append(distances, nil)
			continue
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		distances = append(distances, &v)
	}
	return distances, nil
}

func decodeTranscriptChanges(raw string) ([]indexes.TranscriptChange, error) {
	items := strings.Split(raw, ",")
	changes := make([]indexes.TranscriptChange, 0, len(items))
	for _, item := range items {
		change, err := decodeTranscriptChange(item)
		if err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}
	return changes, nil
}

func decodeTranscriptChange(item string) (indexes.TranscriptChange, error) {
	var change indexes.TranscriptChange

	fields := strings.Split(item, ":")
	if len(fields) != transcriptChangeFieldCount {
		return change, fmt.Errorf("transcript change %q has %d sub-fields, expected %d", item, len(fields), transcriptChangeFieldCount)
	}
	if !strings.HasPrefix(fields[2], exonPrefix) {
		return change, fmt.Errorf("exon %q does not start with %q", fields[2], exonPrefix)
	}
	exon, err := strconv.Atoi(strings.TrimPrefix(fields[2], exonPrefix))
	if err != nil {
		return change, fmt.Errorf("exon %q: %w", fields[2], err)
	}
	if !strings.HasPrefix(fields[3], transcriptPrefix) {
		return change, fmt.Errorf("transcript change %q does not start with %q", fields[3], transcriptPrefix)
	}
	if !strings.HasPrefix(fields[4], proteinPrefix) {
		return change, fmt.Errorf("protein change %q does not start with %q", fields[4], proteinPrefix)
	}

	change.Gene = fields[0]
	change.Accession = fields[1]
	change.Exon = exon
	change.Transcript = fields[3]
	change.Protein = fields[4]
	return change, nil
}

// unwrapNumError drops strconv's function prefix for shorter row errors.
func unwrapNumError(err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return fmt.Errorf("%q is not a valid number: %w", numErr.Num, numErr.Err)
	}
	return err
}
