package decoders

import (
	"errors"
	"strings"

	c "note/api/models/constants"
	da "note/api/models/constants/database-alias"
	"note/api/models/indexes"
)

// AnnotationState is the accumulator of the INFO column fold. The number of
// blocks seen so far is len(Blocks); while it is zero, keys are summary
// statistics.
type AnnotationState struct {
	Info   map[string]interface{}
	Blocks []indexes.AnnotationBlock
}

func NewAnnotationState() AnnotationState {
	return AnnotationState{
		Info:   map[string]interface{}{},
		Blocks: []indexes.AnnotationBlock{},
	}
}

// Step applies one `key=value` token to the state.
func (s AnnotationState) Step(token string) (AnnotationState, error) {
	if token == "" {
		return s, nil
	}
	key, value, hasValue := strings.Cut(token, "=")

	switch {
	case key == c.AnnotationBlockMarker:
		s.Blocks = append(s.Blocks, indexes.NewAnnotationBlock())
		return s, nil
	case key == c.AlleleEndMarker:
		return s, nil
	case !hasValue:
		// flag
		return s, nil
	case len(s.Blocks) == 0:
		return s.stepSummary(key, value)
	default:
		return s.stepAnnotation(key, value)
	}
}

func (s AnnotationState) stepSummary(key, value string) (AnnotationState, error) {
	if _, seen := s.Info[key]; seen {
		return s, structuralError(key, value, "duplicate INFO key")
	}
	decoded, err := SummaryFields.Decode(key, value)
	if err != nil {
		return s, err
	}
	s.Info[key] = decoded
	return s, nil
}

func (s AnnotationState) stepAnnotation(key, value string) (AnnotationState, error) {
	field, aliasText, found := strings.Cut(key, ".")
	if !found {
		return s, unregisteredFieldError(AnnotationFields.Name(), key, value)
	}
	alias, known := da.CastToDatabaseAlias(aliasText)
	if !known {
		return s, unregisteredFieldError("database-alias", key, value)
	}

	decoded, err := AnnotationFields.Decode(field, value)
	if err != nil {
		// report the compound key as it appears in the row
		var fieldErr *FieldError
		if errors.As(err, &fieldErr) {
			fieldErr.Field = key
		}
		return s, err
	}

	current := s.Blocks[len(s.Blocks)-1][alias]
	if _, seen := current[field]; seen {
		return s, structuralError(key, value, "duplicate key within annotation block %d", len(s.Blocks))
	}
	current[field] = decoded
	return s, nil
}

// DecodeAnnotations folds the INFO column into summary statistics and
// annotation blocks.
func DecodeAnnotations(payload string) (AnnotationState, error) {
	state := NewAnnotationState()
	if payload == missingPlaceholder {
		return state, nil
	}

	var err error
	for _, token := range strings.Split(payload, ";") {
		state, err = state.Step(token)
		if err != nil {
			return state, err
		}
	}
	return state, nil
}
