package telemetry

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/rustci/internal/core/domain"
	"go.trai.ch/zerr"
)

// NewExportProcessor returns a span processor writing finished spans as JSON
// to the configured file, or nil when export is disabled.
// Relative file paths resolve against root. The file is appended to and is
// closed when the processor shuts down.
func NewExportProcessor(cfg domain.TelemetrySettings, root string) (sdktrace.SpanProcessor, error) {
	switch cfg.Exporter {
	case domain.ExporterNone, "":
		return nil, nil
	case domain.ExporterStdout:
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidExporter, "cannot create span exporter"), "exporter", string(cfg.Exporter))
	}

	path := cfg.File
	if path == "" {
		path = domain.DefaultTracePath()
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create trace directory"), "path", path)
	}
	//nolint:gosec // path comes from the project file
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open trace file"), "path", path)
	}

	exp, err := stdouttrace.New(stdouttrace.WithWriter(f), stdouttrace.WithPrettyPrint())
	if err != nil {
		_ = f.Close()
		return nil, zerr.Wrap(err, "failed to create stdout exporter")
	}

	return sdktrace.NewSimpleSpanProcessor(&fileExporter{SpanExporter: exp, file: f}), nil
}

type fileExporter struct {
	sdktrace.SpanExporter
	file *os.File
}

func (e *fileExporter) Shutdown(ctx context.Context) error {
	return errors.Join(e.SpanExporter.Shutdown(ctx), e.file.Close())
}
