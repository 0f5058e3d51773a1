// Copyright (c) tkc17.

package iw

import (
	"strings"
)

const stationLinePrefix = "Station "

// ParseStationDump parses the output of iw dev <iface> station dump
// into one Station per station block. Returns an empty slice when no
// station is associated.
//
// A block starts with an unindented header line
//
//	Station c8:7f:54:38:0c:0c (on wlp0s20f3)
//
// followed by indented statistic lines which are split on the first
// colon into name and value. Both sides are trimmed and kept verbatim
// otherwise. Lines without a colon are ignored.
func ParseStationDump(out string) []Station {
	stations := []Station{}
	var current *Station
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, stationLinePrefix) {
			fields := strings.Fields(line)
			if len(fields) < 2 {
				// Malformed header, skip the whole block.
				current = nil
				continue
			}
			stations = append(stations, Station{
				MAC:   fields[1],
				Stats: map[string]string{},
			})
			current = &stations[len(stations)-1]
			continue
		}
		if current == nil {
			continue
		}
		name, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		current.Stats[name] = strings.TrimSpace(value)
	}
	return stations
}
