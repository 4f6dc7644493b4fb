package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ChunkReader reads a flat file in bounded-size row batches so a load
// failure is isolated to one chunk.
type ChunkReader struct {
	file   *os.File
	csv    *csv.Reader
	header []string
}

// OpenChunkReader opens a CSV file and consumes its header row.
func OpenChunkReader(path string) (*ChunkReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("CSV file not found: %s: %w", path, err)
	}

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read CSV header from %s: %w", path, err)
	}

	return &ChunkReader{
		file:   file,
		csv:    reader,
		header: header,
	}, nil
}

// Header returns the column names from the file's header row.
func (r *ChunkReader) Header() []string {
	return r.header
}

// Next returns up to size rows. It returns io.EOF once the file is
// exhausted; a short final chunk is returned with a nil error.
func (r *ChunkReader) Next(size int) ([][]string, error) {
	var rows [][]string
	for len(rows) < size {
		row, err := r.csv.Read()
		if err == io.EOF {
			if len(rows) == 0 {
				return nil, io.EOF
			}
			return rows, nil
		}
		if err != nil {
			return rows, fmt.Errorf("failed to read CSV row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Close closes the underlying file.
func (r *ChunkReader) Close() error {
	return r.file.Close()
}
