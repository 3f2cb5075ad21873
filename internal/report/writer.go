package report

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"colsweep/pkg/errors"
)

// DefaultPrefix is the conventional report file prefix.
const DefaultPrefix = "data_quality"

// Filename builds the conventional report file name:
// <prefix>_<table>_<timestamp>.<ext>.
func Filename(prefix, table string, format Format, at time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	safe := strings.ReplaceAll(table, ".", "_")
	return prefix + "_" + safe + "_" + at.Format("20060102_150405") + "." + format.Extension()
}

// WriteFile renders the report and writes it into dir using the
// conventional name, returning the full path.
func (r *Reporter) WriteFile(dir, prefix string, format Format) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeFileOperation, "failed to create output directory").
			WithContext("dir", dir)
	}

	path := filepath.Join(dir, Filename(prefix, r.result.QualifiedName(), format, r.result.AnalyzedAt))

	if format == FormatExcel {
		if err := r.writeExcel(path); err != nil {
			return "", err
		}
		return path, nil
	}

	content, err := r.Generate(format)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeFileOperation, "failed to write report file").
			WithContext("path", path)
	}
	return path, nil
}
