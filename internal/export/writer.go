// Package export serializes a completed result set into one of the
// supported structured formats. Field order within a record is fixed by
// constants.FieldOrder; records are emitted sorted by image identifier
// regardless of completion order.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"idextract/internal/entity"
	"idextract/internal/results"
)

// Writer writes result sets to disk.
type Writer struct {
	logger *slog.Logger
}

func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// Write serializes set to path in the given format.
func (w *Writer) Write(set map[string]entity.IdentityRecord, format, path string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = w.encodeJSON(set)
	case "txt":
		data, err = w.encodeTXT(set)
	case "csv":
		data, err = w.encodeCSV(set)
	case "xlsx":
		data, err = w.encodeXLSX(set)
	default:
		return fmt.Errorf("output format %q not supported", format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.logger.Info("export.ok", "format", format, "path", path, "records", len(set))
	return nil
}

// fieldValue renders one named field of a record as a string, using the
// single chosen bbox encoding ("x;y;w;h", empty when absent) everywhere a
// flat format needs it.
func fieldValue(rec entity.IdentityRecord, field string) string {
	switch field {
	case "altered":
		return strconv.FormatBool(rec.Altered)
	case "face_bbox":
		if rec.FaceBBox == nil {
			return ""
		}
		b := rec.FaceBBox
		return fmt.Sprintf("%d;%d;%d;%d", b.X, b.Y, b.W, b.H)
	default:
		return rec.StringFields()[field]
	}
}

// sortedIDs is a local alias to keep call sites short.
func sortedIDs(set map[string]entity.IdentityRecord) []string {
	return results.SortedIDs(set)
}
