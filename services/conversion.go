package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"note/api/models"
	"note/api/models/conversion"
	esRepo "note/api/repositories/elasticsearch"
	"note/api/services/converter"
	"note/api/utils"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esutil"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

type (
	ConversionService struct {
		Initialized                   bool
		RequestChan                   chan conversion.ConversionRequest
		RequestMap                    map[string]*conversion.ConversionRequest
		RequestMapMux                 sync.RWMutex
		ConcurrentFileConversionQueue *semaphore.Weighted
		BulkIndexer                   esutil.BulkIndexer
		ElasticsearchClient           *es7.Client
		Config                        *models.Config
	}
)

// NewConversionService builds the service singleton. es may be nil, in which
// case records are only written to the JSON lines output.
func NewConversionService(es *es7.Client, cfg *models.Config) (*ConversionService, error) {
	concurrency := cfg.Api.FileProcessingConcurrencyLevel
	if concurrency < 1 {
		concurrency = 1
	}

	cs := &ConversionService{
		Initialized:                   false,
		RequestChan:                   make(chan conversion.ConversionRequest),
		RequestMap:                    map[string]*conversion.ConversionRequest{},
		ConcurrentFileConversionQueue: semaphore.NewWeighted(int64(concurrency)),
		ElasticsearchClient:           es,
		Config:                        cfg,
	}

	if es != nil {
		//see: https://www.elastic.co/blog/why-am-i-seeing-bulk-rejections-in-my-elasticsearch-cluster
		numWorkers := cfg.Elasticsearch.BulkIndexingCap / 100
		if numWorkers < 1 {
			numWorkers = 1
		}

		bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
			Client:        es,
			NumWorkers:    numWorkers,
			FlushInterval: time.Second,
		})
		if err != nil {
			return nil, err
		}
		cs.BulkIndexer = bi
	}

	cs.Init()

	return cs, nil
}

func (cs *ConversionService) Init() {
	// safeguard to prevent multiple initilizations
	if cs.Initialized {
		return
	}

	// spin up a go routine acting as a listener for request state updates
	go func() {
		for update := range cs.RequestChan {
			update.UpdatedAt = time.Now()

			entry := log.WithFields(log.Fields{
				"id":    update.Id,
				"file":  update.Filename,
				"state": update.State,
			})
			if update.Message != "" {
				entry = entry.WithField("message", update.Message)
			}
			entry.Info("conversion request updated")

			cs.RequestMapMux.Lock()
			stored := update
			cs.RequestMap[update.Id.String()] = &stored
			cs.RequestMapMux.Unlock()
		}
	}()

	cs.Initialized = true
}

// Queue registers a conversion request for fileName (relative to the VCF
// directory) and runs it in the background.
func (cs *ConversionService) Queue(fileName string, index bool) (conversion.ConversionResponseDTO, error) {
	if index && cs.BulkIndexer == nil {
		return conversion.ConversionResponseDTO{}, fmt.Errorf("elasticsearch indexing is not configured")
	}

	req, err := cs.register(fileName, index)
	if err != nil {
		return conversion.ConversionResponseDTO{
			Filename: fileName,
			State:    conversion.Error,
			Message:  err.Error(),
		}, err
	}

	go func(r conversion.ConversionRequest) {
		// errors are reported through the request state
		_ = cs.Run(context.Background(), r)
	}(req)

	return conversion.ConversionResponseDTO{
		Id:       req.Id,
		Filename: req.Filename,
		State:    req.State,
		Message:  "Successfully queued..",
	}, nil
}

// register atomically checks for a running conversion of the same file and
// records a new queued request.
func (cs *ConversionService) register(fileName string, index bool) (conversion.ConversionRequest, error) {
	cs.RequestMapMux.Lock()
	defer cs.RequestMapMux.Unlock()

	if cs.filenameAlreadyRunningLocked(fileName) {
		return conversion.ConversionRequest{}, fmt.Errorf("file %s is already being converted", fileName)
	}
	outputName := utils.OutputFileName(fileName, cs.Config.Conversion.OutputSuffix)
	if cs.activeRequestLocked(func(r *conversion.ConversionRequest) bool { return r.OutputFilename == outputName }) {
		return conversion.ConversionRequest{}, fmt.Errorf("output %s is already being written", outputName)
	}

	now := time.Now()
	req := conversion.ConversionRequest{
		Id:             uuid.New(),
		Filename:       fileName,
		OutputFilename: outputName,
		Index:          index,
		State:          conversion.Queued,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	stored := req
	cs.RequestMap[req.Id.String()] = &stored

	return req, nil
}

// Run performs a registered conversion, waiting for a free file slot first.
func (cs *ConversionService) Run(ctx context.Context, req conversion.ConversionRequest) error {
	// take a spot in the queue
	if err := cs.ConcurrentFileConversionQueue.Acquire(ctx, 1); err != nil {
		return cs.fail(req, err)
	}
	// free up a spot in the queue
	defer cs.ConcurrentFileConversionQueue.Release(1)

	req.State = conversion.Running
	cs.RequestChan <- req

	inPath := filepath.Join(cs.Config.Api.VcfPath, req.Filename)
	outPath := filepath.Join(cs.Config.Api.OutputPath, req.OutputFilename)

	var (
		indexer *esRepo.RecordIndexer
		sinks   []converter.RecordSink
	)
	if req.Index {
		indexer = esRepo.NewRecordIndexer(cs.ElasticsearchClient, cs.BulkIndexer, cs.Config.Elasticsearch.IndexPrefix)
		sinks = append(sinks, indexer)
	}

	startTime := time.Now()
	count, err := converter.ConvertFile(inPath, outPath, cs.Config.Api.MaxLineBytes, sinks...)
	if indexer != nil {
		// wait for the records added so far even if the conversion failed
		if _, indexErr := indexer.Wait(); indexErr != nil && err == nil {
			err = indexErr
		}
	}
	if err != nil {
		req.RecordCount = count
		return cs.fail(req, err)
	}

	req.State = conversion.Done
	req.RecordCount = count
	req.Message = fmt.Sprintf("Converted %d records in %s", count, time.Since(startTime))
	cs.RequestChan <- req

	return nil
}

func (cs *ConversionService) fail(req conversion.ConversionRequest, err error) error {
	req.State = conversion.Error
	req.Message = err.Error()
	cs.RequestChan <- req
	return err
}

func (cs *ConversionService) FilenameAlreadyRunning(filename string) bool {
	cs.RequestMapMux.RLock()
	defer cs.RequestMapMux.RUnlock()

	return cs.filenameAlreadyRunningLocked(filename)
}

func (cs *ConversionService) filenameAlreadyRunningLocked(filename string) bool {
	return cs.activeRequestLocked(func(r *conversion.ConversionRequest) bool { return r.Filename == filename })
}

// activeRequestLocked reports whether a Queued or Running request matches.
func (cs *ConversionService) activeRequestLocked(match func(*conversion.ConversionRequest) bool) bool {
	for _, v := range cs.RequestMap {
		if (v.State == conversion.Queued || v.State == conversion.Running) && match(v) {
			return true
		}
	}
	return false
}

// GetRequests returns a snapshot of all known requests, oldest first.
func (cs *ConversionService) GetRequests() []conversion.ConversionRequest {
	cs.RequestMapMux.RLock()
	requests := make([]conversion.ConversionRequest, 0, len(cs.RequestMap))
	for _, r := range cs.RequestMap {
		requests = append(requests, *r)
	}
	cs.RequestMapMux.RUnlock()

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})
	return requests
}

// GetRequest looks a request up by id.
func (cs *ConversionService) GetRequest(id uuid.UUID) (conversion.ConversionRequest, bool) {
	cs.RequestMapMux.RLock()
	defer cs.RequestMapMux.RUnlock()

	r, ok := cs.RequestMap[id.String()]
	if !ok {
		return conversion.ConversionRequest{}, false
	}
	return *r, true
}

// PruneFinishedRequests forgets Done and Error requests last updated before
// the cutoff and returns how many were removed.
func (cs *ConversionService) PruneFinishedRequests(cutoff time.Time) int {
	cs.RequestMapMux.Lock()
	defer cs.RequestMapMux.Unlock()

	removed := 0
	for id, r := range cs.RequestMap {
		if r.IsFinished() && r.UpdatedAt.Before(cutoff) {
			delete(cs.RequestMap, id)
			removed++
		}
	}
	return removed
}

// Stats returns the bulk indexer statistics, zeroed when indexing is off.
func (cs *ConversionService) Stats() esutil.BulkIndexerStats {
	if cs.BulkIndexer == nil {
		return esutil.BulkIndexerStats{}
	}
	return cs.BulkIndexer.Stats()
}
