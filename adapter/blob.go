package adapter

import (
	"database/sql/driver"
	"slices"
)

// Blob wraps binary data stored in a BLOB column.
type Blob struct {
	Data []byte
}

// NewBlob returns a Blob holding a copy of b.
func NewBlob(b []byte) Blob {
	return Blob{Data: slices.Clone(b)}
}

// Bytes returns the wrapped data.
func (b Blob) Bytes() []byte { return b.Data }

// Value implements driver.Valuer.
func (b Blob) Value() (driver.Value, error) { return b.Data, nil }

// BlobPtrBytes returns the data of a nillable blob; nil for a nil blob.
func BlobPtrBytes(b *Blob) []byte {
	if b == nil {
		return nil
	}
	return b.Data
}

// BlobPtr returns a nillable blob holding b; nil for nil data.
func BlobPtr(b []byte) *Blob {
	if b == nil {
		return nil
	}
	blob := NewBlob(b)
	return &blob
}
