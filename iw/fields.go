// Copyright (c) tkc17.

package iw

import (
	"strconv"
	"strings"
	"unicode"
)

// StatColumns lists the station dump statistics in the order they are
// reported to the CSV output, matching the order iw prints them.
var StatColumns = []string{
	"inactive time",
	"rx bytes",
	"rx packets",
	"tx bytes",
	"tx packets",
	"tx retries",
	"tx failed",
	"beacon loss",
	"beacon rx",
	"rx drop misc",
	"signal",
	"signal avg",
	"tx bitrate",
	"tx duration",
	"rx bitrate",
	"rx duration",
	"authorized",
	"authenticated",
	"associated",
	"preamble",
	"WMM/WME",
	"MFP",
	"TDLS peer",
	"DTIM period",
	"beacon interval",
	"short slot time",
	"connected time",
	"associated at [boottime]",
	"associated at",
	"current time",
}

// CSVHeader returns the header row of the CSV output.
func CSVHeader() []string {
	header := make([]string, 0, len(StatColumns)+2)
	header = append(header, "Timestamp", "BSSID")
	return append(header, StatColumns...)
}

// LeadingFloat parses the leading number of a statistic value.
// Units after the number are ignored, whether separated by a space
// ("8 ms", "-62 [-62, -71] dBm") or glued to it ("20013.925s").
func LeadingFloat(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	token := value
	if idx := strings.IndexFunc(value, unicode.IsSpace); idx >= 0 {
		token = value[:idx]
	}
	end := len(token)
	for end > 0 {
		c := token[end-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		end--
	}
	token = token[:end]
	if token == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FlagValue parses a yes/no statistic value.
func FlagValue(value string) (bool, bool) {
	switch strings.TrimSpace(value) {
	case "yes":
		return true, true
	case "no":
		return false, true
	}
	return false, false
}
