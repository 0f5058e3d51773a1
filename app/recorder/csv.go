// Copyright (c) tkc17.

package recorder

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tkc17/iw-parser/iw"
	"github.com/tkc17/iw-parser/model"
	"github.com/tkc17/iw-parser/util"
)

// CsvTimeLayout is the timestamp format of the first CSV column.
const CsvTimeLayout = "2006-01-02 15:04:05.000000"

// CSVRecorder appends one row per station to a CSV file. The header is
// written once when the file is created and the writer is flushed
// after every sample so rows survive a crash.
type CSVRecorder struct {
	mutex  *sync.Mutex
	path   string
	file   *os.File
	writer *csv.Writer
}

// NewCSVRecorder creates the output file, truncating any previous
// content, and writes the header row.
func NewCSVRecorder(ctx context.Context, path string) (*CSVRecorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	writer := csv.NewWriter(file)
	if err = writer.Write(iw.CSVHeader()); err != nil {
		file.Close()
		return nil, err
	}
	writer.Flush()
	if err = writer.Error(); err != nil {
		file.Close()
		return nil, err
	}
	util.FileLogger().Infof(ctx, "Recording station stats to %s", path)
	return &CSVRecorder{
		mutex:  &sync.Mutex{},
		path:   path,
		file:   file,
		writer: writer,
	}, nil
}

// Name returns the recorder name used in logs.
func (recorder *CSVRecorder) Name() string {
	return "csv"
}

// Path returns the output file path.
func (recorder *CSVRecorder) Path() string {
	return recorder.path
}

// Record writes one row per station in the sample, or a single row
// with the disconnected marker when no station is associated.
func (recorder *CSVRecorder) Record(ctx context.Context, sample *model.Sample) error {
	recorder.mutex.Lock()
	defer recorder.mutex.Unlock()
	if recorder.file == nil {
		return fmt.Errorf("CSV recorder for %s is already closed", recorder.path)
	}
	for _, row := range Rows(sample) {
		if err := recorder.writer.Write(row); err != nil {
			return err
		}
	}
	recorder.writer.Flush()
	return recorder.writer.Error()
}

// Close flushes buffered rows and closes the file.
func (recorder *CSVRecorder) Close() error {
	recorder.mutex.Lock()
	defer recorder.mutex.Unlock()
	if recorder.file == nil {
		return nil
	}
	recorder.writer.Flush()
	flushErr := recorder.writer.Error()
	closeErr := recorder.file.Close()
	recorder.file = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Rows converts a sample into CSV rows in header order. Statistics
// missing from a station block are left empty so every row has
// exactly one cell per header column.
func Rows(sample *model.Sample) [][]string {
	timestamp := sample.SampledAt.Format(CsvTimeLayout)
	numColumns := 2 + len(iw.StatColumns)
	if !sample.Connected {
		row := make([]string, numColumns)
		row[0] = timestamp
		row[1] = model.DisconnectedBSSID
		return [][]string{row}
	}
	rows := make([][]string, 0, len(sample.Stations))
	for _, station := range sample.Stations {
		row := make([]string, 0, numColumns)
		row = append(row, timestamp, station.MAC)
		for _, column := range iw.StatColumns {
			row = append(row, station.Stats[column])
		}
		rows = append(rows, row)
	}
	return rows
}
