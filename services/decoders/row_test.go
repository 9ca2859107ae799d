package decoders

import (
	"errors"
	"testing"

	da "note/api/models/constants/database-alias"
	"note/api/models/indexes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRow(t *testing.T) {
	sampleNames := []string{"NA00001", "NA00002"}

	t.Run("complete row", func(t *testing.T) {
		record, err := DecodeRow(row("chr1\t100\t.\tA\tG\t50\tPASS\tAC=1;AF=0.5;ANNOVAR_DATE=x;Func.refGene=exonic\tGT:DP\t0/1:20\t1/1:15"), sampleNames)
		require.NoError(t, err)

		assert.Equal(t, []string{"G"}, record.Alt)
		assert.Equal(t, map[string]interface{}{"AC": []int{1}, "AF": []indexes.Float{0.5}}, record.Info)
		assert.Equal(t, []indexes.AnnotationBlock{{
			da.RefGene:   {"Func": []string{"exonic"}},
			da.EnsGene:   {},
			da.KnownGene: {},
		}}, record.Annotations)
		assert.Equal(t, map[string]indexes.Sample{
			"NA00001": {"GT": []*int{intPtr(0), intPtr(1)}, "DP": 20},
			"NA00002": {"GT": []*int{intPtr(1), intPtr(1)}, "DP": 15},
		}, record.Samples)
	})

	t.Run("sites-only row without a format column", func(t *testing.T) {
		record, err := DecodeRow(row("chr1\t100\t.\tA\tG\t50\tPASS\tAC=1"), []string{})
		require.NoError(t, err)
		assert.Empty(t, record.Samples)
	})

	t.Run("missing format column with bound samples", func(t *testing.T) {
		_, err := DecodeRow(row("chr1\t100\t.\tA\tG\t50\tPASS\tAC=1"), sampleNames)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrStructural))
	})

	t.Run("one failing key fails the whole row", func(t *testing.T) {
		record, err := DecodeRow(row("chr1\t100\t.\tA\tG\t50\tPASS\tAC=1;ANNOVAR_DATE=x;Func.refGene=exonic;Unknown.refGene=1\tGT:DP\t0/1:20\t1/1:15"), sampleNames)
		require.Error(t, err)
		assert.Nil(t, record)
		assert.True(t, errors.Is(err, ErrUnregisteredField))

		var fieldErr *FieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, "Unknown.refGene", fieldErr.Field)
	})
}
