package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucsky/cuid"

	"github.com/sellerlytics/sellerlytics/internal/models"
)

// Exporter writes flattened tables to some destination.
type Exporter interface {
	WriteTable(t Table) error
	Close() error
}

// New picks the exporter for the configured output format. Each export run
// gets its own directory under the output path.
func New(cfg *models.Config) (Exporter, string, error) {
	runID := cuid.Slug()
	dir := filepath.Join(cfg.OutputPath, cfg.OutputFolder, runID)

	switch cfg.OutputFormat {
	case "csv":
		return NewCSVExporter(dir), runID, nil
	case "json":
		return NewJSONExporter(dir), runID, nil
	case "parquet":
		exp, err := NewParquetExporter(cfg, dir)
		if err != nil {
			return nil, "", err
		}
		return exp, runID, nil
	default:
		return nil, "", fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
	}
}

type CSVExporter struct {
	dir string
}

func NewCSVExporter(dir string) *CSVExporter {
	return &CSVExporter{dir: dir}
}

func (e *CSVExporter) WriteTable(t Table) error {
	if err := os.MkdirAll(e.dir, os.ModePerm); err != nil {
		return err
	}
	file, err := os.Create(filepath.Join(e.dir, t.Name+".csv"))
	if err != nil {
		return fmt.Errorf("failed to create file for table %s: %w", t.Name, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (e *CSVExporter) Close() error { return nil }

// JSONExporter writes one newline-delimited JSON file per table, each row an
// object keyed by the table headers.
type JSONExporter struct {
	dir string
}

func NewJSONExporter(dir string) *JSONExporter {
	return &JSONExporter{dir: dir}
}

func (e *JSONExporter) WriteTable(t Table) error {
	if err := os.MkdirAll(e.dir, os.ModePerm); err != nil {
		return err
	}
	file, err := os.Create(filepath.Join(e.dir, t.Name+".json"))
	if err != nil {
		return fmt.Errorf("failed to create file for table %s: %w", t.Name, err)
	}
	defer file.Close()

	for _, row := range t.Rows {
		obj := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			obj[h] = row[i]
		}
		data, err := json.Marshal(obj)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}

func (e *JSONExporter) Close() error { return nil }
