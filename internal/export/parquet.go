package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/sellerlytics/sellerlytics/internal/models"
)

// ParquetExporter writes one parquet file per table, locally or straight to
// cloud storage when an object-store destination is configured.
type ParquetExporter struct {
	dir     string
	factory CloudWriterFactory
	bucket  string
	files   []source.ParquetFile
}

func NewParquetExporter(cfg *models.Config, dir string) (*ParquetExporter, error) {
	p := &ParquetExporter{dir: dir}

	if cfg.OutputDestination != "local" {
		switch cfg.CloudStorage.Provider {
		case "s3":
			factory, err := NewS3WriterFactory(cfg.CloudStorage.Region)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			p.factory = factory
			p.bucket = cfg.CloudStorage.BucketName
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.CloudStorage.Provider)
		}
	}
	return p, nil
}

func (e *ParquetExporter) WriteTable(t Table) error {
	fw, err := e.openFile(t.Name)
	if err != nil {
		return err
	}
	e.files = append(e.files, fw)

	md := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		md[i] = fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY", h)
	}

	pw, err := writer.NewCSVWriter(md, fw, 4)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer for table %s: %w", t.Name, err)
	}

	for _, row := range t.Rows {
		rec := make([]*string, len(row))
		for i := range row {
			v := row[i]
			rec[i] = &v
		}
		if err := pw.WriteString(rec); err != nil {
			return fmt.Errorf("failed to write row to table %s: %w", t.Name, err)
		}
	}
	return pw.WriteStop()
}

func (e *ParquetExporter) openFile(name string) (source.ParquetFile, error) {
	if e.factory != nil {
		objectPath := filepath.Join(e.dir, name+".parquet")
		cw, err := e.factory.NewWriter(e.bucket, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		return newCloudParquetFile(cw), nil
	}
	if err := os.MkdirAll(e.dir, os.ModePerm); err != nil {
		return nil, err
	}
	return local.NewLocalFileWriter(filepath.Join(e.dir, name+".parquet"))
}

func (e *ParquetExporter) Close() error {
	var lastErr error
	for _, f := range e.files {
		if err := f.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
