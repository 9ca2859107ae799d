package converter

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	c "note/api/models/constants"
	"note/api/models/indexes"
	"note/api/services/decoders"
	"note/api/utils"

	log "github.com/sirupsen/logrus"
)

const DefaultMaxLineBytes = 16 * 1024 * 1024

// RecordSink receives every decoded record, in input order.
type RecordSink interface {
	Write(record *indexes.VariantRecord) error
}

// RowError reports the input line (1-based, header lines included) that
// stopped a conversion.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Reader streams VariantRecords out of a decompressed annotated VCF.
type Reader struct {
	scanner     *bufio.Scanner
	line        int
	sampleNames []string
	headerRead  bool
}

func NewReader(r io.Reader, maxLineBytes int) *Reader {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	// the scanner's limit is the larger of the two
	initialBytes := 64 * 1024
	if initialBytes > maxLineBytes {
		initialBytes = maxLineBytes
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialBytes), maxLineBytes)
	return &Reader{scanner: scanner}
}

// SampleNames returns the sample names bound from the column header.
func (vr *Reader) SampleNames() []string {
	return vr.sampleNames
}

func (vr *Reader) nextLine() (string, bool, error) {
	for vr.scanner.Scan() {
		vr.line++
		line := strings.TrimSuffix(vr.scanner.Text(), "\r")
		if line == "" {
			continue
		}
		return line, true, nil
	}
	if err := vr.scanner.Err(); err != nil {
		return "", false, &RowError{Line: vr.line + 1, Err: err}
	}
	return "", false, nil
}

// ReadHeader skips the meta-information lines and binds the sample names
// declared by the `#CHROM` column header.
func (vr *Reader) ReadHeader() error {
	if vr.headerRead {
		return nil
	}
	for {
		line, ok, err := vr.nextLine()
		if err != nil {
			return err
		}
		if !ok {
			return &RowError{Line: vr.line, Err: fmt.Errorf("%w: no %s column header found", decoders.ErrStructural, c.ColumnHeaderPrefix)}
		}
		if strings.HasPrefix(line, c.MetaInformationPrefix) {
			continue
		}
		if !strings.HasPrefix(line, c.ColumnHeaderPrefix) {
			return &RowError{Line: vr.line, Err: fmt.Errorf("%w: data row before the %s column header", decoders.ErrStructural, c.ColumnHeaderPrefix)}
		}

		names, err := bindSampleNames(strings.Split(line, "\t"))
		if err != nil {
			return &RowError{Line: vr.line, Err: err}
		}
		vr.sampleNames = names
		vr.headerRead = true

		log.WithField("samples", len(names)).Debugf("found the column header on line %d", vr.line)
		return nil
	}
}

func bindSampleNames(headers []string) ([]string, error) {
	if len(headers) < c.MandatoryColumnCount {
		return nil, fmt.Errorf("%w: column header has %d columns, expected at least %d", decoders.ErrStructural, len(headers), c.MandatoryColumnCount)
	}
	for i, header := range headers {
		if i >= len(c.VcfHeaders) {
			break
		}
		if name := strings.ToLower(strings.TrimPrefix(header, "#")); name != c.VcfHeaders[i] {
			return nil, fmt.Errorf("%w: column %d of the header is %q, expected %q", decoders.ErrStructural, i+1, header, strings.ToUpper(c.VcfHeaders[i]))
		}
	}
	if len(headers) <= c.FirstSampleColumn {
		return []string{}, nil
	}

	names := headers[c.FirstSampleColumn:]
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			return nil, fmt.Errorf("%w: empty or duplicate sample name %q", decoders.ErrStructural, name)
		}
		seen[name] = true
	}
	return names, nil
}

// Next decodes the next data row. It returns io.EOF once the input is
// exhausted.
func (vr *Reader) Next() (*indexes.VariantRecord, error) {
	if err := vr.ReadHeader(); err != nil {
		return nil, err
	}

	line, ok, err := vr.nextLine()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, io.EOF
	}

	record, err := decoders.DecodeRow(strings.Split(line, "\t"), vr.sampleNames)
	if err != nil {
		return nil, &RowError{Line: vr.line, Err: err}
	}
	return record, nil
}

// JsonLinesWriter writes one compact JSON document per line. Each record
// is handed to the underlying writer in a single Write call.
type JsonLinesWriter struct {
	w   io.Writer
	buf bytes.Buffer
	enc *json.Encoder
}

func NewJsonLinesWriter(w io.Writer) *JsonLinesWriter {
	jw := &JsonLinesWriter{w: w}
	jw.enc = json.NewEncoder(&jw.buf)
	jw.enc.SetEscapeHTML(false)
	return jw
}

func (jw *JsonLinesWriter) Write(record *indexes.VariantRecord) error {
	jw.buf.Reset()
	// Encode terminates the document with '\n'
	if err := jw.enc.Encode(record); err != nil {
		return err
	}
	_, err := jw.w.Write(jw.buf.Bytes())
	return err
}

// Convert streams every record of r to the sinks and returns the number of
// records written. Only one record is held in memory at a time.
func Convert(r io.Reader, maxLineBytes int, sinks ...RecordSink) (int, error) {
	vr := NewReader(r, maxLineBytes)

	count := 0
	for {
		record, err := vr.Next()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}

		for _, sink := range sinks {
			if err := sink.Write(record); err != nil {
				return count, &RowError{Line: vr.line, Err: err}
			}
		}
		count++
	}
}

// ConvertFile converts the gzip compressed annotated VCF at inPath into a
// gzip compressed JSON lines file at outPath. On failure the output file is
// removed rather than left truncated.
func ConvertFile(inPath string, outPath string, maxLineBytes int, extraSinks ...RecordSink) (count int, err error) {
	in, err := utils.OpenGzipFile(inPath)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := utils.CreateGzipFile(outPath)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(outPath)
		}
	}()

	sinks := append([]RecordSink{NewJsonLinesWriter(out)}, extraSinks...)
	count, err = Convert(in, maxLineBytes, sinks...)
	if err != nil {
		return count, fmt.Errorf("%s: %w", inPath, err)
	}

	log.WithFields(log.Fields{
		"input":   inPath,
		"output":  outPath,
		"records": count,
	}).Info("conversion complete")
	return count, nil
}
