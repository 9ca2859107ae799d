package utils

import (
	"net/http"
	"time"

	"note/api/models"

	"github.com/carbocation/pfx"
	"github.com/cenkalti/backoff"
	es7 "github.com/elastic/go-elasticsearch/v7"
	log "github.com/sirupsen/logrus"
)

// statuses worth another attempt while the cluster is busy or restarting
var esRetryStatuses = []int{
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
	http.StatusTooManyRequests,
}

// RetryBackoff returns the delay before the given retry attempt. The client
// calls it from every request goroutine, so each call walks its own backoff.
func RetryBackoff(attempt int) time.Duration {
	delay := backoff.NewExponentialBackOff()
	next := delay.NextBackOff()
	for i := 1; i < attempt; i++ {
		next = delay.NextBackOff()
	}
	return next
}

// CreateEsConnection builds a client for the configured cluster. Failed
// requests are retried with an exponential backoff.
func CreateEsConnection(cfg *models.Config) (*es7.Client, error) {
	esCfg := cfg.Elasticsearch
	if esCfg.MaxRetries <= 0 {
		esCfg.MaxRetries = 5
	}

	client, err := es7.NewClient(es7.Config{
		Addresses:     []string{esCfg.Url},
		Username:      esCfg.Username,
		Password:      esCfg.Password,
		RetryOnStatus: esRetryStatuses,
		MaxRetries:    esCfg.MaxRetries,
		RetryBackoff:  RetryBackoff,
	})
	if err != nil {
		return nil, pfx.Err(err)
	}

	log.WithFields(log.Fields{
		"url":        esCfg.Url,
		"maxRetries": esCfg.MaxRetries,
	}).Infof("using elasticsearch client %s", es7.Version)

	return client, nil
}
