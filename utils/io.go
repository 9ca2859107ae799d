package utils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
	"github.com/klauspost/compress/gzip"
)

type gzipReadCloser struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Close() error {
	gzErr := g.Reader.Close()
	if err := g.file.Close(); err != nil {
		return pfx.Err(err)
	}
	return gzErr
}

type gzipWriteCloser struct {
	*gzip.Writer
	file *os.File
}

func (g *gzipWriteCloser) Close() error {
	if err := g.Writer.Close(); err != nil {
		g.file.Close()
		return pfx.Err(err)
	}
	if err := g.file.Close(); err != nil {
		return pfx.Err(err)
	}
	return nil
}

// OpenGzipFile opens a gzip (or bgzip) compressed file for streaming reads.
// Closing the reader closes the underlying file.
func OpenGzipFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	gr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, pfx.Err(err)
	}
	// bgzip output is a series of gzip members
	gr.Multistream(true)

	return &gzipReadCloser{Reader: gr, file: f}, nil
}

// CreateGzipFile creates (or truncates) path and returns a gzip writer on
// top of it. Closing the writer flushes the gzip stream and closes the file.
func CreateGzipFile(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, pfx.Err(err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return &gzipWriteCloser{Writer: gzip.NewWriter(f), file: f}, nil
}
