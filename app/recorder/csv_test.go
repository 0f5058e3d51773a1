// Copyright (c) tkc17.

package recorder

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tkc17/iw-parser/iw"
	"github.com/tkc17/iw-parser/model"
)

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "iwmon-recorder-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("IWMON_HOME", tmpDir)
	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func sampleAt(t *testing.T, sampledAt time.Time, stations []iw.Station) *model.Sample {
	t.Helper()
	return model.NewSample("sample-1", "wlan0", sampledAt, stations)
}

func readCsv(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Error in reading CSV - %s", err.Error())
	}
	return records
}

func TestCSVRecorder(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.csv")
	recorder, err := NewCSVRecorder(ctx, path)
	if err != nil {
		t.Fatalf("Error in creating CSV recorder - %s", err.Error())
	}
	defer recorder.Close()
	sampledAt := time.Date(2026, 8, 21, 10, 30, 0, 123456000, time.UTC)
	stations := []iw.Station{
		{
			MAC: "dc:2c:6e:9a:70:8f",
			Stats: map[string]string{
				"signal":   "-62 [-62, -71] dBm",
				"rx bytes": "71389644",
			},
		},
	}
	if err = recorder.Record(ctx, sampleAt(t, sampledAt, stations)); err != nil {
		t.Fatalf("Error in recording sample - %s", err.Error())
	}
	records := readCsv(t, path)
	if len(records) != 2 {
		t.Fatalf("Expected header and one row, found %d records", len(records))
	}
	header := records[0]
	if header[0] != "Timestamp" || header[1] != "BSSID" {
		t.Fatalf("Unexpected header start: %v", header[:2])
	}
	if len(header) != 2+len(iw.StatColumns) {
		t.Fatalf("Expected %d header columns, found %d", 2+len(iw.StatColumns), len(header))
	}
	row := records[1]
	if len(row) != len(header) {
		t.Fatalf("Expected %d cells, found %d", len(header), len(row))
	}
	if row[0] != "2026-08-21 10:30:00.123456" {
		t.Fatalf("Unexpected timestamp %q", row[0])
	}
	if row[1] != "dc:2c:6e:9a:70:8f" {
		t.Fatalf("Unexpected BSSID %q", row[1])
	}
	cells := map[string]string{}
	for i, column := range header {
		cells[column] = row[i]
	}
	if cells["signal"] != "-62 [-62, -71] dBm" {
		t.Fatalf("Unexpected signal cell %q", cells["signal"])
	}
	if cells["rx bytes"] != "71389644" {
		t.Fatalf("Unexpected rx bytes cell %q", cells["rx bytes"])
	}
	// Statistics absent from the dump stay empty.
	if cells["tx bitrate"] != "" {
		t.Fatalf("Expected empty tx bitrate cell, found %q", cells["tx bitrate"])
	}
}

func TestCSVRecorderDisconnected(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.csv")
	recorder, err := NewCSVRecorder(ctx, path)
	if err != nil {
		t.Fatalf("Error in creating CSV recorder - %s", err.Error())
	}
	defer recorder.Close()
	if err = recorder.Record(ctx, sampleAt(t, time.Now(), nil)); err != nil {
		t.Fatalf("Error in recording sample - %s", err.Error())
	}
	records := readCsv(t, path)
	if len(records) != 2 {
		t.Fatalf("Expected header and one row, found %d records", len(records))
	}
	row := records[1]
	if row[1] != model.DisconnectedBSSID {
		t.Fatalf("Expected %s, found %q", model.DisconnectedBSSID, row[1])
	}
	for i, cell := range row[2:] {
		if cell != "" {
			t.Fatalf("Expected empty cell at %d, found %q", i+2, cell)
		}
	}
}

func TestCSVRecorderMultipleStations(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.csv")
	recorder, err := NewCSVRecorder(ctx, path)
	if err != nil {
		t.Fatalf("Error in creating CSV recorder - %s", err.Error())
	}
	defer recorder.Close()
	stations := []iw.Station{
		{MAC: "aa:aa:aa:aa:aa:aa", Stats: map[string]string{"signal": "-50 dBm"}},
		{MAC: "bb:bb:bb:bb:bb:bb", Stats: map[string]string{"signal": "-70 dBm"}},
	}
	if err = recorder.Record(ctx, sampleAt(t, time.Now(), stations)); err != nil {
		t.Fatalf("Error in recording sample - %s", err.Error())
	}
	records := readCsv(t, path)
	if len(records) != 3 {
		t.Fatalf("Expected header and two rows, found %d records", len(records))
	}
	if records[1][1] != "aa:aa:aa:aa:aa:aa" || records[2][1] != "bb:bb:bb:bb:bb:bb" {
		t.Fatalf("Unexpected station order: %q, %q", records[1][1], records[2][1])
	}
	if records[1][0] != records[2][0] {
		t.Fatalf("Expected the same timestamp on both rows")
	}
}

func TestCSVRecorderTruncatesExistingFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("stale content\n"), 0644); err != nil {
		t.Fatal(err)
	}
	recorder, err := NewCSVRecorder(ctx, path)
	if err != nil {
		t.Fatalf("Error in creating CSV recorder - %s", err.Error())
	}
	defer recorder.Close()
	records := readCsv(t, path)
	if len(records) != 1 {
		t.Fatalf("Expected only the header, found %d records", len(records))
	}
	if records[0][0] != "Timestamp" {
		t.Fatalf("Unexpected first column %q", records[0][0])
	}
}

func TestCSVRecorderClosed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.csv")
	recorder, err := NewCSVRecorder(ctx, path)
	if err != nil {
		t.Fatalf("Error in creating CSV recorder - %s", err.Error())
	}
	if err = recorder.Close(); err != nil {
		t.Fatalf("Error in closing recorder - %s", err.Error())
	}
	if err = recorder.Record(ctx, sampleAt(t, time.Now(), nil)); err == nil {
		t.Fatalf("Expected error after close")
	}
}
