package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"note/api/models/constants/chromosome"
	"note/api/models/indexes"

	"github.com/Jeffail/gabs"
	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esutil"
	log "github.com/sirupsen/logrus"
)

const resourceAlreadyExists = "resource_already_exists_exception"

const otherContigsIndexSuffix = "other"

// RecordIndexName returns the index holding the records of a chromosome,
// e.g. `annotated-variants-x` for `chrX`. Unplaced and alternate contigs
// share a single `-other` index.
func RecordIndexName(prefix string, chrom string) string {
	if !chromosome.IsValidHumanChromosome(chrom) {
		return fmt.Sprintf("%s-%s", prefix, otherContigsIndexSuffix)
	}
	return fmt.Sprintf("%s-%s", prefix, chromosome.Normalize(chrom))
}

// EnsureRecordIndex creates the index with the record mapping unless it
// already exists.
func EnsureRecordIndex(ctx context.Context, es *es7.Client, index string) error {
	existsRes, err := es.Indices.Exists([]string{index}, es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return err
	}
	existsRes.Body.Close()
	if existsRes.StatusCode == http.StatusOK {
		return nil
	}

	body, err := BuildVariantRecordIndexBody()
	if err != nil {
		return err
	}

	res, err := es.Indices.Create(index,
		es.Indices.Create.WithContext(ctx),
		es.Indices.Create.WithBody(bytes.NewReader(body.Bytes())),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		parsed, parseErr := gabs.ParseJSONBuffer(res.Body)
		if parseErr != nil {
			return fmt.Errorf("creating index %s: %s", index, res.Status())
		}
		// another file's conversion may have created it in the meantime
		if errorType, ok := parsed.Path("error.type").Data().(string); ok && errorType == resourceAlreadyExists {
			return nil
		}
		return fmt.Errorf("creating index %s: %s: %s", index, res.Status(), parsed.Path("error.reason").String())
	}

	log.Infof("Created index %s", index)
	return nil
}

// RecordIndexer sends converted records to a shared bulk indexer, one
// document per record. Call Wait once the conversion is over.
type RecordIndexer struct {
	es          *es7.Client
	bulkIndexer esutil.BulkIndexer
	indexPrefix string
	ensured     map[string]bool

	wg        sync.WaitGroup
	succeeded uint64
	failed    uint64

	firstFailureMux sync.Mutex
	firstFailure    error
}

func NewRecordIndexer(es *es7.Client, bulkIndexer esutil.BulkIndexer, indexPrefix string) *RecordIndexer {
	return &RecordIndexer{
		es:          es,
		bulkIndexer: bulkIndexer,
		indexPrefix: indexPrefix,
		ensured:     map[string]bool{},
	}
}

func (ri *RecordIndexer) Write(record *indexes.VariantRecord) error {
	ctx := context.Background()

	index := RecordIndexName(ri.indexPrefix, record.Chrom)
	if !ri.ensured[index] {
		if err := EnsureRecordIndex(ctx, ri.es, index); err != nil {
			return err
		}
		ri.ensured[index] = true
	}

	// Prepare the data payload: encode record to JSON
	recordData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("cannot encode record %s:%d: %w", record.Chrom, record.Pos, err)
	}

	ri.wg.Add(1)
	err = ri.bulkIndexer.Add(ctx, esutil.BulkIndexerItem{
		Action: "index",
		Index:  index,
		Body:   bytes.NewReader(recordData),

		OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
			defer ri.wg.Done()
			atomic.AddUint64(&ri.succeeded, 1)
		},

		OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
			defer ri.wg.Done()
			atomic.AddUint64(&ri.failed, 1)
			if err == nil {
				err = fmt.Errorf("%s: %s", res.Error.Type, res.Error.Reason)
			}
			ri.recordFailure(err)
		},
	})
	if err != nil {
		ri.wg.Done()
		return err
	}
	return nil
}

func (ri *RecordIndexer) recordFailure(err error) {
	ri.firstFailureMux.Lock()
	defer ri.firstFailureMux.Unlock()
	if ri.firstFailure == nil {
		ri.firstFailure = err
	}
	log.Errorf("indexing failure: %s", err)
}

// Wait blocks until every added record was acknowledged by Elasticsearch and
// returns the number of indexed records, or the first failure.
func (ri *RecordIndexer) Wait() (int, error) {
	ri.wg.Wait()

	if failed := atomic.LoadUint64(&ri.failed); failed > 0 {
		ri.firstFailureMux.Lock()
		defer ri.firstFailureMux.Unlock()
		return int(atomic.LoadUint64(&ri.succeeded)), fmt.Errorf("%d records failed to index, first failure: %w", failed, ri.firstFailure)
	}
	return int(atomic.LoadUint64(&ri.succeeded)), nil
}
