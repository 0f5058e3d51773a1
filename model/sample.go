// Copyright (c) tkc17.

package model

import (
	"time"

	"github.com/tkc17/iw-parser/iw"
)

// DisconnectedBSSID is reported in place of a station MAC when no
// station is associated on the interface.
const DisconnectedBSSID = "Disconnected"

// StationInfo is the API form of one parsed station block. The raw
// statistics are kept verbatim and commonly charted values are also
// exposed as parsed numbers.
type StationInfo struct {
	MAC           string            `json:"mac"`
	Stats         map[string]string `json:"stats"`
	SignalDBM     *float64          `json:"signalDbm,omitempty"`
	SignalAvgDBM  *float64          `json:"signalAvgDbm,omitempty"`
	TxBitrateMbps *float64          `json:"txBitrateMbps,omitempty"`
	RxBitrateMbps *float64          `json:"rxBitrateMbps,omitempty"`
	ConnectedSec  *float64          `json:"connectedSec,omitempty"`
}

// NewStationInfo converts a parsed station into its API form.
func NewStationInfo(station iw.Station) StationInfo {
	info := StationInfo{
		MAC:   station.MAC,
		Stats: station.Stats,
	}
	info.SignalDBM = floatPtr(station.SignalDBM())
	info.SignalAvgDBM = floatPtr(station.SignalAvgDBM())
	info.TxBitrateMbps = floatPtr(station.TxBitrateMbps())
	info.RxBitrateMbps = floatPtr(station.RxBitrateMbps())
	info.ConnectedSec = floatPtr(station.ConnectedSeconds())
	return info
}

func floatPtr(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

// Value returns the verbatim value of the named statistic.
func (info StationInfo) Value(key string) string {
	return info.Stats[key]
}

// Numeric returns the leading numeric part of the named statistic.
func (info StationInfo) Numeric(key string) (float64, bool) {
	return iw.LeadingFloat(info.Stats[key])
}

// Flag returns the boolean value of a yes/no statistic.
func (info StationInfo) Flag(key string) (bool, bool) {
	return iw.FlagValue(info.Stats[key])
}

// Sample is one timestamped reading of the station dump on an interface.
type Sample struct {
	SampleId  string        `json:"sampleId"`
	Iface     string        `json:"iface"`
	SampledAt time.Time     `json:"sampledAt"`
	Connected bool          `json:"connected"`
	Stations  []StationInfo `json:"stations"`
}

// NewSample builds a sample from the parsed stations.
func NewSample(sampleId, iface string, sampledAt time.Time, stations []iw.Station) *Sample {
	infos := make([]StationInfo, 0, len(stations))
	for _, station := range stations {
		infos = append(infos, NewStationInfo(station))
	}
	return &Sample{
		SampleId:  sampleId,
		Iface:     iface,
		SampledAt: sampledAt,
		Connected: len(infos) > 0,
		Stations:  infos,
	}
}

// BSSID returns the MAC of the first station,
// or DisconnectedBSSID when there is none.
func (s *Sample) BSSID() string {
	if len(s.Stations) == 0 {
		return DisconnectedBSSID
	}
	return s.Stations[0].MAC
}
