package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	c "note/api/models/constants"
	"note/api/models/conversion"
	"note/api/utils/fixtures"

	. "github.com/ahmetb/go-linq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForState polls the request map until the request reaches state.
func waitForState(t *testing.T, cs *ConversionService, filename string, state c.ConversionState) conversion.ConversionRequest {
	var found conversion.ConversionRequest
	require.Eventually(t, func() bool {
		match := From(cs.GetRequests()).FirstWithT(func(r conversion.ConversionRequest) bool {
			return r.Filename == filename && r.State == state
		})
		if match == nil {
			return false
		}
		found = match.(conversion.ConversionRequest)
		return true
	}, 5*time.Second, 10*time.Millisecond)
	return found
}

func TestConversionService(t *testing.T) {
	t.Run("converts a queued file", func(t *testing.T) {
		cfg := fixtures.InitConfigWithDirectories(t)
		fixtures.WriteGzipFile(t, cfg.Api.VcfPath, "demo.vcf.gz", fixtures.DemoVcf)

		cs, err := NewConversionService(nil, cfg)
		require.NoError(t, err)

		dto, err := cs.Queue("demo.vcf.gz", false)
		require.NoError(t, err)
		assert.Equal(t, conversion.Queued, dto.State)

		done := waitForState(t, cs, "demo.vcf.gz", conversion.Done)
		assert.Equal(t, dto.Id, done.Id)
		assert.Equal(t, 1, done.RecordCount)
		assert.Equal(t, "demo.variants.json.gz", done.OutputFilename)

		lines := fixtures.ReadGzipLines(t, filepath.Join(cfg.Api.OutputPath, "demo.variants.json.gz"))
		assert.Len(t, lines, 1)
	})

	t.Run("reports failed conversions", func(t *testing.T) {
		cfg := fixtures.InitConfigWithDirectories(t)
		fixtures.WriteGzipFile(t, cfg.Api.VcfPath, "broken.vcf.gz", "chr1\t100\t.\tA\tG\t50\tPASS\t.\n")

		cs, err := NewConversionService(nil, cfg)
		require.NoError(t, err)

		_, err = cs.Queue("broken.vcf.gz", false)
		require.NoError(t, err)

		failed := waitForState(t, cs, "broken.vcf.gz", conversion.Error)
		assert.Contains(t, failed.Message, "structural error")
		assert.False(t, cs.FilenameAlreadyRunning("broken.vcf.gz"))
	})

	t.Run("rejects a file that is already queued", func(t *testing.T) {
		cfg := fixtures.InitConfigWithDirectories(t)
		cs, err := NewConversionService(nil, cfg)
		require.NoError(t, err)

		// hold every slot so the request stays queued
		require.NoError(t, cs.ConcurrentFileConversionQueue.Acquire(context.Background(), int64(cfg.Api.FileProcessingConcurrencyLevel)))

		_, err = cs.Queue("demo.vcf.gz", false)
		require.NoError(t, err)
		assert.True(t, cs.FilenameAlreadyRunning("demo.vcf.gz"))

		dto, err := cs.Queue("demo.vcf.gz", false)
		require.Error(t, err)
		assert.Equal(t, conversion.Error, dto.State)

		cs.ConcurrentFileConversionQueue.Release(int64(cfg.Api.FileProcessingConcurrencyLevel))
		waitForState(t, cs, "demo.vcf.gz", conversion.Error)
	})

	t.Run("same file names in different directories", func(t *testing.T) {
		cfg := fixtures.InitConfigWithDirectories(t)
		fixtures.WriteGzipFile(t, cfg.Api.VcfPath, "runA/sample.vcf.gz", fixtures.DemoVcf)
		fixtures.WriteGzipFile(t, cfg.Api.VcfPath, "runB/sample.vcf.gz", fixtures.AnnotatedVcf)

		cs, err := NewConversionService(nil, cfg)
		require.NoError(t, err)

		_, err = cs.Queue("runA/sample.vcf.gz", false)
		require.NoError(t, err)
		_, err = cs.Queue("runB/sample.vcf.gz", false)
		require.NoError(t, err)

		doneA := waitForState(t, cs, "runA/sample.vcf.gz", conversion.Done)
		doneB := waitForState(t, cs, "runB/sample.vcf.gz", conversion.Done)
		assert.Equal(t, filepath.Join("runA", "sample.variants.json.gz"), doneA.OutputFilename)
		assert.Equal(t, filepath.Join("runB", "sample.variants.json.gz"), doneB.OutputFilename)

		assert.Len(t, fixtures.ReadGzipLines(t, filepath.Join(cfg.Api.OutputPath, doneA.OutputFilename)), 1)
		assert.Len(t, fixtures.ReadGzipLines(t, filepath.Join(cfg.Api.OutputPath, doneB.OutputFilename)), 2)
	})

	t.Run("rejects a second writer of the same output", func(t *testing.T) {
		cfg := fixtures.InitConfigWithDirectories(t)
		cs, err := NewConversionService(nil, cfg)
		require.NoError(t, err)

		require.NoError(t, cs.ConcurrentFileConversionQueue.Acquire(context.Background(), int64(cfg.Api.FileProcessingConcurrencyLevel)))

		_, err = cs.Queue("sample.vcf.gz", false)
		require.NoError(t, err)

		// different input, same output name
		dto, err := cs.Queue("./sample.vcf.gz", false)
		require.Error(t, err)
		assert.Equal(t, conversion.Error, dto.State)
		assert.Contains(t, err.Error(), "already being written")

		cs.ConcurrentFileConversionQueue.Release(int64(cfg.Api.FileProcessingConcurrencyLevel))
		waitForState(t, cs, "sample.vcf.gz", conversion.Error)
	})

	t.Run("indexing requires elasticsearch", func(t *testing.T) {
		cfg := fixtures.InitConfigWithDirectories(t)
		cs, err := NewConversionService(nil, cfg)
		require.NoError(t, err)

		_, err = cs.Queue("demo.vcf.gz", true)
		assert.Error(t, err)
		assert.Empty(t, cs.GetRequests())
		assert.Zero(t, cs.Stats().NumAdded)
	})

	t.Run("runs synchronously", func(t *testing.T) {
		cfg := fixtures.InitConfigWithDirectories(t)
		fixtures.WriteGzipFile(t, cfg.Api.VcfPath, "annotated.vcf.gz", fixtures.AnnotatedVcf)

		cs, err := NewConversionService(nil, cfg)
		require.NoError(t, err)

		req, err := cs.register("annotated.vcf.gz", false)
		require.NoError(t, err)
		require.NoError(t, cs.Run(context.Background(), req))

		done := waitForState(t, cs, "annotated.vcf.gz", conversion.Done)
		assert.Equal(t, 2, done.RecordCount)

		found, ok := cs.GetRequest(req.Id)
		assert.True(t, ok)
		assert.Equal(t, req.Id, found.Id)
	})

	t.Run("prunes finished requests", func(t *testing.T) {
		cfg := fixtures.InitConfigWithDirectories(t)
		fixtures.WriteGzipFile(t, cfg.Api.VcfPath, "demo.vcf.gz", fixtures.DemoVcf)

		cs, err := NewConversionService(nil, cfg)
		require.NoError(t, err)

		_, err = cs.Queue("demo.vcf.gz", false)
		require.NoError(t, err)
		waitForState(t, cs, "demo.vcf.gz", conversion.Done)

		// nothing finished before the cutoff
		assert.Equal(t, 0, cs.PruneFinishedRequests(time.Now().Add(-time.Hour)))
		assert.Equal(t, 1, cs.PruneFinishedRequests(time.Now().Add(time.Second)))
		assert.Empty(t, cs.GetRequests())
	})
}
