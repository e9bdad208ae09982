package field

import (
	"fmt"
	"strings"
)

// GenericIndexGroup is the index group used when an index annotation
// does not list any group.
const GenericIndexGroup = -1

// Collate is the collating sequence of a text column.
type Collate uint8

// Supported collating sequences.
const (
	CollateNone Collate = iota
	CollateBinary
	CollateNoCase
	CollateRTrim
)

// String returns the SQL keyword of the collation.
func (c Collate) String() string {
	switch c {
	case CollateBinary:
		return "BINARY"
	case CollateNoCase:
		return "NOCASE"
	case CollateRTrim:
		return "RTRIM"
	default:
		return "NONE"
	}
}

// ParseCollate parses a collation keyword (case-insensitive).
func ParseCollate(s string) (Collate, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return CollateNone, nil
	case "BINARY":
		return CollateBinary, nil
	case "NOCASE":
		return CollateNoCase, nil
	case "RTRIM":
		return CollateRTrim, nil
	}
	return CollateNone, fmt.Errorf("field: unknown collation %q", s)
}

// ConflictAction is the SQLite conflict resolution algorithm of a constraint.
type ConflictAction uint8

// Conflict actions.
const (
	ConflictNone ConflictAction = iota
	ConflictRollback
	ConflictAbort
	ConflictFail
	ConflictIgnore
	ConflictReplace
)

// String returns the SQL keyword of the action.
func (a ConflictAction) String() string {
	switch a {
	case ConflictRollback:
		return "ROLLBACK"
	case ConflictAbort:
		return "ABORT"
	case ConflictFail:
		return "FAIL"
	case ConflictIgnore:
		return "IGNORE"
	case ConflictReplace:
		return "REPLACE"
	default:
		return "NONE"
	}
}

// ParseConflictAction parses a conflict action keyword (case-insensitive).
func ParseConflictAction(s string) (ConflictAction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return ConflictNone, nil
	case "ROLLBACK":
		return ConflictRollback, nil
	case "ABORT":
		return ConflictAbort, nil
	case "FAIL":
		return ConflictFail, nil
	case "IGNORE":
		return ConflictIgnore, nil
	case "REPLACE":
		return ConflictReplace, nil
	}
	return ConflictNone, fmt.Errorf("field: unknown conflict action %q", s)
}

// Column is the mapping annotation of a field.
type Column struct {
	// Name overrides the SQL column name. Defaults to the field name.
	Name string
	// Length is the declared column length, -1 when unspecified.
	Length int
	// Collate is the collating sequence of the column.
	Collate Collate
	// Default is the SQL default value, if any.
	Default *string
	// Converter names a custom type converter. It takes precedence over
	// every other access rule.
	Converter string
	// Getter and Setter override the accessor method names used for
	// unexported fields.
	Getter string
	Setter string
}

// PrimaryKey marks a field as the primary key of its table.
type PrimaryKey struct {
	AutoIncrement bool
	// QuickCheck allows the generated code to treat a zero key as "not
	// inserted yet". Only meaningful with AutoIncrement.
	QuickCheck bool
}

// Unique adds a UNIQUE constraint to the column.
type Unique struct {
	Unique     bool
	OnConflict ConflictAction
	Groups     []int
}

// NotNull adds a NOT NULL constraint to the column.
type NotNull struct {
	OnConflict ConflictAction
}

// Index adds the column to one or more index groups.
type Index struct {
	Groups []int
}

// ContainerKey overrides the key used by the container representation.
type ContainerKey struct {
	Name string
	// PutDefault controls whether loading a row into a container writes a
	// default when the source value is absent.
	PutDefault bool
}

// ForeignKey lists the referenced columns of a foreign-key column.
type ForeignKey struct {
	References []string
}

// Annotations groups the annotations of one field. A nil member means the
// annotation is absent.
type Annotations struct {
	Column       *Column
	PrimaryKey   *PrimaryKey
	Unique       *Unique
	NotNull      *NotNull
	Index        *Index
	ContainerKey *ContainerKey
	ForeignKey   *ForeignKey
}

// Descriptor describes one struct field and its annotations.
type Descriptor struct {
	// Name is the Go field name.
	Name string
	// Type is the declared type of the field.
	Type *TypeInfo
	// Private reports if the field is unexported.
	Private bool
	// Annotations of the field.
	Annotations Annotations
}
