package output

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
)

type csvFile struct {
	file   *os.File
	writer *csv.Writer
}

// CSVOutput writes one ReportRow per report, partitioned like JSONOutput.
type CSVOutput struct {
	basePath string
	folder   string
	mu       sync.Mutex
	files    map[string]*csvFile
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*csvFile),
	}
}

func (c *CSVOutput) WriteMessage(_ context.Context, topic string, msg []byte) error {
	row, err := RowFromMessage(msg)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fullPath := partitionDir(c.basePath, c.folder, topic, row.Timestamp)
	f, ok := c.files[fullPath]
	if !ok {
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err := os.Create(filepath.Join(fullPath, "data.csv"))
		if err != nil {
			return err
		}
		f = &csvFile{file: file, writer: csv.NewWriter(file)}
		c.files[fullPath] = f

		if err := f.writer.Write(csvHeader); err != nil {
			return err
		}
	}

	if err := f.writer.Write(row.record()); err != nil {
		return err
	}
	f.writer.Flush()
	return f.writer.Error()
}

func (c *CSVOutput) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var lastErr error
	for key, f := range c.files {
		f.writer.Flush()
		if err := f.writer.Error(); err != nil {
			lastErr = err
		}
		if err := f.file.Close(); err != nil {
			lastErr = err
		}
		delete(c.files, key)
	}
	return lastErr
}
