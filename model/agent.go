// Copyright (c) tkc17.

package model

import "time"

const (
	HealthStatusOk       = "ok"
	HealthStatusDegraded = "degraded"
)

// AgentInfo describes the running agent.
type AgentInfo struct {
	AgentId     string    `json:"agentId"`
	Version     string    `json:"version"`
	Iface       string    `json:"iface"`
	IntervalSec int       `json:"intervalSec"`
	StartedAt   time.Time `json:"startedAt"`
	CsvPath     string    `json:"csvPath,omitempty"`
	ArchivePath string    `json:"archivePath,omitempty"`
}

// Health is the healthz response. The status degrades when the latest
// sample is older than allowed for the configured interval.
type Health struct {
	Status        string     `json:"status"`
	Version       string     `json:"version"`
	UptimeSec     float64    `json:"uptimeSec"`
	Samples       uint64     `json:"samples"`
	SampleErrors  uint64     `json:"sampleErrors"`
	Disconnected  uint64     `json:"disconnectedSamples"`
	LastSampleAt  *time.Time `json:"lastSampleAt,omitempty"`
	LastSampleAge *float64   `json:"lastSampleAgeSec,omitempty"`
}

// SamplesPage is the paged response for archived samples.
type SamplesPage struct {
	Samples []Sample `json:"samples"`
	Count   int      `json:"count"`
}

// PreflightCheck is the result of one startup environment check.
// Required checks must pass for the agent to start.
type PreflightCheck struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Ok       bool   `json:"ok"`
	Required bool   `json:"required"`
}

// ApiError is the JSON error payload of the agent API.
type ApiError struct {
	Error string `json:"error"`
}
