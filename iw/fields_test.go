// Copyright (c) tkc17.

package iw

import (
	"testing"
)

func TestCSVHeader(t *testing.T) {
	header := CSVHeader()
	if len(header) != len(StatColumns)+2 {
		t.Fatalf("expected %d columns, found %d", len(StatColumns)+2, len(header))
	}
	if header[0] != "Timestamp" || header[1] != "BSSID" {
		t.Fatalf("unexpected leading columns %v", header[:2])
	}
	if header[len(header)-1] != "current time" {
		t.Fatalf("unexpected last column %s", header[len(header)-1])
	}
}

func TestLeadingFloat(t *testing.T) {
	testCases := []struct {
		value string
		want  float64
		ok    bool
	}{
		{"27240", 27240, true},
		{"8 ms", 8, true},
		{"-62 [-62, -71] dBm", -62, true},
		{"245.0 MBit/s 80MHz HE-MCS 3 HE-NSS 2 HE-GI 2 HE-DCM 0", 245.0, true},
		{"20013.925s", 20013.925, true},
		{"1690312565425 ms", 1690312565425, true},
		{"8 seconds", 8, true},
		{"", 0, false},
		{"yes", 0, false},
		{"long", 0, false},
	}
	for _, tc := range testCases {
		got, ok := LeadingFloat(tc.value)
		if ok != tc.ok {
			t.Fatalf("value %q: expected ok=%v, found %v", tc.value, tc.ok, ok)
		}
		if ok && got != tc.want {
			t.Fatalf("value %q: expected %v, found %v", tc.value, tc.want, got)
		}
	}
}

func TestFlagValue(t *testing.T) {
	if v, ok := FlagValue("yes"); !ok || !v {
		t.Fatalf("expected yes to parse as true")
	}
	if v, ok := FlagValue("no"); !ok || v {
		t.Fatalf("expected no to parse as false")
	}
	if _, ok := FlagValue("long"); ok {
		t.Fatalf("expected long to be rejected")
	}
	if _, ok := FlagValue(""); ok {
		t.Fatalf("expected empty value to be rejected")
	}
}

func TestStationAccessors(t *testing.T) {
	stations := ParseStationDump(singleStationDump)
	if len(stations) != 1 {
		t.Fatalf("expected 1 station, found %d", len(stations))
	}
	station := stations[0]
	if v, ok := station.SignalDBM(); !ok || v != -62 {
		t.Fatalf("expected signal -62, found %v (ok=%v)", v, ok)
	}
	if v, ok := station.SignalAvgDBM(); !ok || v != -61 {
		t.Fatalf("expected signal avg -61, found %v (ok=%v)", v, ok)
	}
	if v, ok := station.TxBitrateMbps(); !ok || v != 245.0 {
		t.Fatalf("expected tx bitrate 245.0, found %v (ok=%v)", v, ok)
	}
	if v, ok := station.RxBitrateMbps(); !ok || v != 648.5 {
		t.Fatalf("expected rx bitrate 648.5, found %v (ok=%v)", v, ok)
	}
	if v, ok := station.ConnectedSeconds(); !ok || v != 8 {
		t.Fatalf("expected connected time 8, found %v (ok=%v)", v, ok)
	}
	if v, ok := station.InactiveMillis(); !ok || v != 8 {
		t.Fatalf("expected inactive time 8, found %v (ok=%v)", v, ok)
	}
	if v, ok := station.Numeric("rx bytes"); !ok || v != 27240 {
		t.Fatalf("expected rx bytes 27240, found %v (ok=%v)", v, ok)
	}
	if v, ok := station.Flag("authorized"); !ok || !v {
		t.Fatalf("expected authorized true, found %v (ok=%v)", v, ok)
	}
	if v, ok := station.Flag("MFP"); !ok || v {
		t.Fatalf("expected MFP false, found %v (ok=%v)", v, ok)
	}
	if _, ok := station.Flag("preamble"); ok {
		t.Fatalf("expected preamble to not parse as flag")
	}
}
