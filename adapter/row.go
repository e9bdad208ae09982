package adapter

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Row is one row of a result set, addressed by column index.
type Row interface {
	// ColumnIndex returns the index of the named column, or -1.
	ColumnIndex(name string) int
	// IsNull reports if the value at index is NULL.
	IsNull(index int) bool
	// Value returns the raw value at index.
	Value(index int) any

	StringValue(index int) string
	Int64Value(index int) int64
	Float64Value(index int) float64
	BoolValue(index int) bool
	BytesValue(index int) []byte
	TimeValue(index int) time.Time
}

// ScannedRow is a Row whose values were already read from the driver.
type ScannedRow struct {
	columns []string
	values  []any
}

// NewRow returns a Row over the given columns and values.
func NewRow(columns []string, values []any) *ScannedRow {
	return &ScannedRow{columns: columns, values: values}
}

// ScanRow reads the current row of rows. The caller must have called
// rows.Next.
func ScanRow(rows *sql.Rows) (*ScannedRow, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("adapter: row columns: %w", err)
	}
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("adapter: scan row: %w", err)
	}
	return NewRow(columns, values), nil
}

// ColumnIndex implements Row. An exact match wins over a case-insensitive one.
func (r *ScannedRow) ColumnIndex(name string) int {
	for i, c := range r.columns {
		if c == name {
			return i
		}
	}
	for i, c := range r.columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// IsNull implements Row.
func (r *ScannedRow) IsNull(index int) bool { return r.Value(index) == nil }

// Value implements Row.
func (r *ScannedRow) Value(index int) any {
	if index < 0 || index >= len(r.values) {
		return nil
	}
	return r.values[index]
}

// StringValue implements Row.
func (r *ScannedRow) StringValue(index int) string { return cast.ToString(r.Value(index)) }

// Int64Value implements Row.
func (r *ScannedRow) Int64Value(index int) int64 { return cast.ToInt64(r.Value(index)) }

// Float64Value implements Row.
func (r *ScannedRow) Float64Value(index int) float64 { return cast.ToFloat64(r.Value(index)) }

// BoolValue implements Row.
func (r *ScannedRow) BoolValue(index int) bool { return cast.ToBool(r.Value(index)) }

// BytesValue implements Row.
func (r *ScannedRow) BytesValue(index int) []byte { return toBytes(r.Value(index)) }

// TimeValue implements Row.
func (r *ScannedRow) TimeValue(index int) time.Time { return cast.ToTime(r.Value(index)) }

var _ Row = (*ScannedRow)(nil)
