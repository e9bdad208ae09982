package gen

import (
	"errors"
	"log/slog"
	"sync"
)

// Reporter receives configuration errors found while building columns.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(error)

// Report implements Reporter.
func (f ReporterFunc) Report(err error) { f(err) }

// LogReporter logs every reported error.
type LogReporter struct {
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Report implements Reporter.
func (r *LogReporter) Report(err error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{"error", err}
	var (
		colErr  *ColumnError
		convErr *ConverterError
		accErr  *AccessorError
	)
	switch {
	case errors.As(err, &colErr):
		attrs = append(attrs, "table", colErr.Table, "field", colErr.Field, "type", colErr.Type)
	case errors.As(err, &convErr):
		attrs = append(attrs, "field", convErr.Field, "converter", convErr.Converter, "declared", convErr.Declared, "expected", convErr.Expected)
	case errors.As(err, &accErr):
		attrs = append(attrs, "field", accErr.Field, "type", accErr.Type)
	}
	logger.Error("column configuration error", attrs...)
}

// Diagnostics collects reported errors. It is safe for concurrent use.
type Diagnostics struct {
	mu   sync.Mutex
	errs []error
}

// Report implements Reporter.
func (d *Diagnostics) Report(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errs = append(d.errs, err)
}

// Errors returns the reported errors in report order.
func (d *Diagnostics) Errors() []error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]error(nil), d.errs...)
}

// Err joins the reported errors. It returns nil if none was reported.
func (d *Diagnostics) Err() error {
	return errors.Join(d.Errors()...)
}

func report(r Reporter, err error) error {
	if r != nil && err != nil {
		r.Report(err)
	}
	return err
}

var (
	_ Reporter = (*LogReporter)(nil)
	_ Reporter = (*Diagnostics)(nil)
	_ Reporter = ReporterFunc(nil)
)
