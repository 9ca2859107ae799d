package decoders

import (
	"errors"
	"strings"
	"testing"

	"note/api/models/indexes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(text string) []string {
	return strings.Split(text, "\t")
}

func TestDecodeFixedColumns(t *testing.T) {
	t.Run("mandatory columns", func(t *testing.T) {
		record, err := DecodeFixedColumns(row("chr1\t100\trs123\tA\tG,T\t37\tPASS\t."))
		require.NoError(t, err)

		assert.Equal(t, "chr1", record.Chrom)
		assert.Equal(t, 100, record.Pos)
		require.NotNil(t, record.Id)
		assert.Equal(t, "rs123", *record.Id)
		assert.Equal(t, "A", record.Ref)
		assert.Equal(t, []string{"G", "T"}, record.Alt)
		assert.Equal(t, 37, record.Qual)
		assert.Equal(t, []string{}, record.Filter)
	})

	t.Run("identifier", func(t *testing.T) {
		record, err := DecodeFixedColumns(row("chr1\t100\t.\tA\tG\t37\tPASS\t."))
		require.NoError(t, err)
		assert.Nil(t, record.Id)
	})

	t.Run("quality", func(t *testing.T) {
		for raw, expected := range map[string]interface{}{
			"37":   37,
			"42.5": indexes.Float(42.5),
			"37.0": indexes.Float(37),
			".":    nil,
			"high": nil,
			"NaN":  nil,
		} {
			record, err := DecodeFixedColumns(row("chr1\t100\t.\tA\tG\t" + raw + "\tPASS\t."))
			require.NoError(t, err, raw)
			assert.Equal(t, expected, record.Qual, raw)
		}
	})

	t.Run("filter", func(t *testing.T) {
		record, err := DecodeFixedColumns(row("chr1\t100\t.\tA\tG\t37\t.\t."))
		require.NoError(t, err)
		assert.Nil(t, record.Filter)

		record, err = DecodeFixedColumns(row("chr1\t100\t.\tA\tG\t37\tq10;s50\t."))
		require.NoError(t, err)
		assert.Equal(t, []string{"q10", "s50"}, record.Filter)
	})

	t.Run("structural errors", func(t *testing.T) {
		for _, text := range []string{
			"chr1\t100\t.\tA\tG\t37\tPASS",
			"\t100\t.\tA\tG\t37\tPASS\t.",
			"chr1\t0\t.\tA\tG\t37\tPASS\t.",
			"chr1\t100\t.\t\tG\t37\tPASS\t.",
			"chr1\t100\t.\tA\tG,\t37\tPASS\t.",
			"chr1\t100\t.\tA\t\t37\tPASS\t.",
		} {
			_, err := DecodeFixedColumns(row(text))
			require.Error(t, err, text)
			assert.True(t, errors.Is(err, ErrStructural), text)
		}
	})

	t.Run("malformed position", func(t *testing.T) {
		_, err := DecodeFixedColumns(row("chr1\tone\t.\tA\tG\t37\tPASS\t."))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValueShape))
	})
}

func TestFixedColumnsRoundTrip(t *testing.T) {
	for _, text := range []string{
		"chr1\t100\trs123\tA\tG,T\t37\tPASS",
		"chrX\t2781479\t.\tAT\tA\t42.5\tq10;s50",
		"chr2\t500\t.\tC\tT\t37.0\tPASS",
		"chrM\t73\t.\tA\tG\t.\t.",
	} {
		t.Run(text, func(t *testing.T) {
			record, err := DecodeFixedColumns(row(text + "\t."))
			require.NoError(t, err)

			assert.Equal(t, text, strings.Join(EncodeFixedColumns(record), "\t"))

			again, err := DecodeFixedColumns(append(EncodeFixedColumns(record), "."))
			require.NoError(t, err)
			assert.Equal(t, record, again)
		})
	}
}
