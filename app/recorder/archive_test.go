// Copyright (c) tkc17.

package recorder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tkc17/iw-parser/iw"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.db")
	archive, err := NewArchive(context.Background(), path)
	if err != nil {
		t.Fatalf("Error in creating archive - %s", err.Error())
	}
	t.Cleanup(func() { archive.Close() })
	return archive
}

func TestArchiveRecordRecent(t *testing.T) {
	ctx := context.Background()
	archive := newTestArchive(t)
	base := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	stations := []iw.Station{
		{MAC: "dc:2c:6e:9a:70:8f", Stats: map[string]string{"signal": "-62 [-62, -71] dBm"}},
	}
	for i := 0; i < 3; i++ {
		sample := sampleAt(t, base.Add(time.Duration(i)*time.Second), stations)
		if err := archive.Record(ctx, sample); err != nil {
			t.Fatalf("Error in recording sample - %s", err.Error())
		}
	}
	samples, err := archive.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Error in reading recent samples - %s", err.Error())
	}
	if len(samples) != 2 {
		t.Fatalf("Expected 2 samples, found %d", len(samples))
	}
	if !samples[0].SampledAt.After(samples[1].SampledAt) {
		t.Fatalf("Expected newest first: %v, %v", samples[0].SampledAt, samples[1].SampledAt)
	}
	if got := samples[0].Stations[0].Stats["signal"]; got != "-62 [-62, -71] dBm" {
		t.Fatalf("Unexpected signal stat after round trip: %q", got)
	}
}

func TestArchiveSince(t *testing.T) {
	ctx := context.Background()
	archive := newTestArchive(t)
	base := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		sample := sampleAt(t, base.Add(time.Duration(i)*time.Minute), nil)
		if err := archive.Record(ctx, sample); err != nil {
			t.Fatalf("Error in recording sample - %s", err.Error())
		}
	}
	samples, err := archive.Since(ctx, base.Add(2*time.Minute), 10)
	if err != nil {
		t.Fatalf("Error in reading samples - %s", err.Error())
	}
	if len(samples) != 2 {
		t.Fatalf("Expected 2 samples, found %d", len(samples))
	}
	if !samples[0].SampledAt.Before(samples[1].SampledAt) {
		t.Fatalf("Expected oldest first: %v, %v", samples[0].SampledAt, samples[1].SampledAt)
	}
	samples, err = archive.Since(ctx, base.Add(time.Hour), 10)
	if err != nil {
		t.Fatalf("Error in reading samples - %s", err.Error())
	}
	if len(samples) != 0 {
		t.Fatalf("Expected no samples, found %d", len(samples))
	}
}

func TestArchivePurgeOlderThan(t *testing.T) {
	ctx := context.Background()
	archive := newTestArchive(t)
	base := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		sample := sampleAt(t, base.Add(time.Duration(i)*time.Hour), nil)
		if err := archive.Record(ctx, sample); err != nil {
			t.Fatalf("Error in recording sample - %s", err.Error())
		}
	}
	deleted, err := archive.PurgeOlderThan(ctx, base.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Error in purging samples - %s", err.Error())
	}
	if deleted != 2 {
		t.Fatalf("Expected 2 deleted samples, found %d", deleted)
	}
	samples, err := archive.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Error in reading samples - %s", err.Error())
	}
	if len(samples) != 2 {
		t.Fatalf("Expected 2 remaining samples, found %d", len(samples))
	}
}
