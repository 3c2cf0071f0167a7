package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONOutput appends reports as JSON lines to one file per topic and hour.
type JSONOutput struct {
	basePath string
	folder   string
	mu       sync.Mutex
	files    map[string]*os.File
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(_ context.Context, topic string, msg []byte) error {
	row, err := RowFromMessage(msg)
	if err != nil {
		return err
	}

	var line bytes.Buffer
	if err := json.Compact(&line, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	line.WriteByte('\n')

	j.mu.Lock()
	defer j.mu.Unlock()

	fullPath := partitionDir(j.basePath, j.folder, topic, row.Timestamp)
	fileKey := fullPath
	file, ok := j.files[fileKey]
	if !ok {
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err = os.Create(filepath.Join(fullPath, "data.json"))
		if err != nil {
			return err
		}
		j.files[fileKey] = file
	}

	_, err = file.Write(line.Bytes())
	return err
}

func (j *JSONOutput) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var lastErr error
	for key, file := range j.files {
		if err := file.Close(); err != nil {
			lastErr = err
		}
		delete(j.files, key)
	}
	return lastErr
}
