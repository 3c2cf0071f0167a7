package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/chrisdamba/foodinsights/internal/cloudwriter"
	"github.com/chrisdamba/foodinsights/internal/models"
	"github.com/chrisdamba/foodinsights/internal/utils"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

const parquetParallelism = 4

type ParquetOutput struct {
	basePath           string
	folder             string
	mu                 sync.Mutex
	writers            map[string]*writer.ParquetWriter
	writerMutexes      map[string]*sync.Mutex
	files              map[string]source.ParquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

// CloudParquetFile adapts a CloudWriter to the write-only subset of
// source.ParquetFile the parquet writer needs.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cloudWriter}
}

// Open and Create return the receiver: the object is created on first write.
func (c *CloudParquetFile) Open(string) (source.ParquetFile, error)   { return c, nil }
func (c *CloudParquetFile) Create(string) (source.ParquetFile, error) { return c, nil }

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	default:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read([]byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (int, error) {
	n, err := c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

func NewParquetOutput(ctx context.Context, config *models.Config) (*ParquetOutput, error) {
	var factory cloudwriter.CloudWriterFactory
	switch config.CloudStorage.Provider {
	case "", "local":
	case "s3":
		f, err := cloudwriter.NewS3WriterFactory(ctx, config.CloudStorage.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		factory = f
	default:
		return nil, fmt.Errorf("unsupported cloud storage provider: %s", config.CloudStorage.Provider)
	}
	return NewParquetOutputWithFactory(config.OutputPath, config.OutputFolder, factory, config.CloudStorage.BucketName), nil
}

// NewParquetOutputWithFactory writes through factory when it is non-nil and
// to local files under basePath otherwise.
func NewParquetOutputWithFactory(basePath, folder string, factory cloudwriter.CloudWriterFactory, bucket string) *ParquetOutput {
	p := &ParquetOutput{
		basePath:           basePath,
		folder:             folder,
		writers:            make(map[string]*writer.ParquetWriter),
		writerMutexes:      make(map[string]*sync.Mutex),
		files:              make(map[string]source.ParquetFile),
		cloudWriterFactory: factory,
		cloudBucketName:    bucket,
	}
	if factory == nil {
		// clean up existing .parquet files
		p.cleanup()
	}
	return p
}

func schemaFor(topic string) (interface{}, error) {
	switch topic {
	case TopicInsightReports:
		return new(ReportRow), nil
	default:
		return nil, fmt.Errorf("unknown topic: %s", topic)
	}
}

func (p *ParquetOutput) WriteMessage(_ context.Context, topic string, msg []byte) error {
	row, err := RowFromMessage(msg)
	if err != nil {
		return err
	}

	partition := partitionPath(row.Timestamp)
	writerKey := topic + "/" + partition

	p.mu.Lock()
	pw, ok := p.writers[writerKey]
	if !ok {
		pw, err = p.createNewWriter(writerKey, topic, partition)
		if err != nil {
			p.mu.Unlock()
			return fmt.Errorf("failed to create new writer: %w", err)
		}
	}
	writerMutex := p.writerMutexes[writerKey]
	p.mu.Unlock()

	writerMutex.Lock()
	defer writerMutex.Unlock()

	if err := pw.Write(row); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (p *ParquetOutput) cleanup() {
	fullPath := filepath.Join(p.basePath, p.folder)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return
	}
	err := filepath.Walk(fullPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".parquet" {
			return os.Remove(path)
		}
		return nil
	})
	if err != nil {
		utils.Log.Warnf("Error cleaning up Parquet files: %v", err)
	}
}

// createNewWriter must be called with p.mu held.
func (p *ParquetOutput) createNewWriter(writerKey, topic, partition string) (*writer.ParquetWriter, error) {
	var fw source.ParquetFile
	if p.cloudWriterFactory != nil {
		objectPath := path.Join(p.folder, topic, partition, "data.parquet")
		cloudWriter, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = NewCloudParquetFile(cloudWriter)
	} else {
		fullPath := filepath.Join(p.basePath, p.folder, topic, filepath.FromSlash(partition))
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return nil, err
		}
		var err error
		fw, err = local.NewLocalFileWriter(filepath.Join(fullPath, "data.parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	obj, err := schemaFor(topic)
	if err != nil {
		fw.Close()
		return nil, err
	}

	pw, err := writer.NewParquetWriter(fw, obj, parquetParallelism)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	p.writers[writerKey] = pw
	p.writerMutexes[writerKey] = &sync.Mutex{}
	p.files[writerKey] = fw
	return pw, nil
}

func (p *ParquetOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for key, pw := range p.writers {
		mutex := p.writerMutexes[key]
		mutex.Lock()
		if err := pw.WriteStop(); err != nil {
			lastErr = err
			utils.Log.Errorf("Error closing writer for key %s: %v", key, err)
		}
		if f, ok := p.files[key]; ok {
			if err := f.Close(); err != nil {
				lastErr = err
				utils.Log.Errorf("Error closing file for key %s: %v", key, err)
			}
		}
		mutex.Unlock()
		delete(p.writers, key)
		delete(p.files, key)
	}
	return lastErr
}
