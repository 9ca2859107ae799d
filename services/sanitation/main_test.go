package sanitation

import (
	"testing"
	"time"

	"note/api/models/conversion"
	"note/api/services"
	"note/api/utils/fixtures"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitationService(t *testing.T) {
	cfg := fixtures.InitConfigWithDirectories(t)
	cfg.Sanitation.RetentionHours = 1

	cs, err := services.NewConversionService(nil, cfg)
	require.NoError(t, err)

	ss := NewSanitationService(cs, cfg)
	defer ss.Stop()
	require.True(t, ss.Initialized)

	now := time.Now()
	requests := []conversion.ConversionRequest{
		{Id: uuid.New(), Filename: "old-done.vcf.gz", State: conversion.Done, UpdatedAt: now.Add(-2 * time.Hour)},
		{Id: uuid.New(), Filename: "old-error.vcf.gz", State: conversion.Error, UpdatedAt: now.Add(-3 * time.Hour)},
		{Id: uuid.New(), Filename: "recent.vcf.gz", State: conversion.Done, UpdatedAt: now},
		{Id: uuid.New(), Filename: "stuck.vcf.gz", State: conversion.Running, UpdatedAt: now.Add(-5 * time.Hour)},
	}
	cs.RequestMapMux.Lock()
	for i := range requests {
		cs.RequestMap[requests[i].Id.String()] = &requests[i]
	}
	cs.RequestMapMux.Unlock()

	assert.Equal(t, 2, ss.PruneConversionRequests())

	remaining := []string{}
	for _, r := range cs.GetRequests() {
		remaining = append(remaining, r.Filename)
	}
	assert.ElementsMatch(t, []string{"recent.vcf.gz", "stuck.vcf.gz"}, remaining)
}

func TestSanitationServiceRejectsBadSchedule(t *testing.T) {
	cfg := fixtures.InitConfigWithDirectories(t)
	cfg.Sanitation.At = "quarter past four"

	cs, err := services.NewConversionService(nil, cfg)
	require.NoError(t, err)

	ss := NewSanitationService(cs, cfg)
	assert.False(t, ss.Initialized)
	ss.Stop()
}
