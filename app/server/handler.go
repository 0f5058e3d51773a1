// Copyright (c) tkc17.

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/tkc17/iw-parser/model"
	"github.com/tkc17/iw-parser/util"
)

const (
	defaultSamplesLimit = 100
	maxSamplesLimit     = 1000
	// staleSampleFactor sets how many intervals without a sample are
	// tolerated before the health degrades.
	staleSampleFactor = 3
)

// CollectorState is the part of the collector the API reports on.
type CollectorState interface {
	Iface() string
	Interval() time.Duration
	StartedAt() time.Time
	LatestSample() *model.Sample
	Counts() (uint64, uint64, uint64)
}

// SampleStore is the part of the archive the API queries.
type SampleStore interface {
	Recent(ctx context.Context, limit int) ([]model.Sample, error)
	Since(ctx context.Context, since time.Time, limit int) ([]model.Sample, error)
}

// apiHandler serves the agent API from the collector state and the
// optional sample store.
type apiHandler struct {
	collector CollectorState
	store     SampleStore
}

// HandleHealthz reports the agent health. The status degrades when no
// sample has been collected for staleSampleFactor intervals.
func (handler *apiHandler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	samples, sampleErrors, disconnects := handler.collector.Counts()
	health := model.Health{
		Status:       model.HealthStatusOk,
		Version:      util.Version(),
		UptimeSec:    time.Since(handler.collector.StartedAt()).Seconds(),
		Samples:      samples,
		SampleErrors: sampleErrors,
		Disconnected: disconnects,
	}
	staleAfter := time.Duration(staleSampleFactor) * handler.collector.Interval()
	if sample := handler.collector.LatestSample(); sample == nil {
		if time.Since(handler.collector.StartedAt()) > staleAfter {
			health.Status = model.HealthStatusDegraded
		}
	} else {
		age := time.Since(sample.SampledAt)
		ageSec := age.Seconds()
		health.LastSampleAt = &sample.SampledAt
		health.LastSampleAge = &ageSec
		if age > staleAfter {
			health.Status = model.HealthStatusDegraded
		}
	}
	writeJSON(r.Context(), w, http.StatusOK, health)
}

// HandleInfo reports the agent identity and configuration.
func (handler *apiHandler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	config := util.CurrentConfig()
	info := model.AgentInfo{
		AgentId:     config.String(util.AgentIdKey),
		Version:     util.Version(),
		Iface:       handler.collector.Iface(),
		IntervalSec: int(handler.collector.Interval() / time.Second),
		StartedAt:   handler.collector.StartedAt(),
		CsvPath:     config.String(util.MonitorOutputKey),
		ArchivePath: config.String(util.ArchivePathKey),
	}
	writeJSON(r.Context(), w, http.StatusOK, info)
}

// HandleStations returns the latest sample.
func (handler *apiHandler) HandleStations(w http.ResponseWriter, r *http.Request) {
	sample := handler.collector.LatestSample()
	if sample == nil {
		writeError(r.Context(), w, http.StatusNotFound, "No sample collected yet")
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, sample)
}

// HandleSamples queries the archive with optional since and limit
// parameters.
func (handler *apiHandler) HandleSamples(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if handler.store == nil {
		writeError(ctx, w, http.StatusNotFound, "Sample archive is not enabled")
		return
	}
	limit := defaultSamplesLimit
	if value := r.URL.Query().Get("limit"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
		if limit > maxSamplesLimit {
			limit = maxSamplesLimit
		}
	}
	var samples []model.Sample
	var err error
	if value := r.URL.Query().Get("since"); value != "" {
		since, parseErr := time.Parse(time.RFC3339, value)
		if parseErr != nil {
			writeError(ctx, w, http.StatusBadRequest, "Invalid since parameter, RFC3339 expected")
			return
		}
		samples, err = handler.store.Since(ctx, since, limit)
	} else {
		samples, err = handler.store.Recent(ctx, limit)
	}
	if err != nil {
		util.FileLogger().Errorf(ctx, "Failed to query samples - %s", err.Error())
		writeError(ctx, w, http.StatusInternalServerError, "Failed to query samples")
		return
	}
	writeJSON(ctx, w, http.StatusOK, model.SamplesPage{Samples: samples, Count: len(samples)})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		util.FileLogger().Errorf(ctx, "Failed to write response - %s", err.Error())
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, statusCode int, message string) {
	writeJSON(ctx, w, statusCode, model.ApiError{Error: message})
}
