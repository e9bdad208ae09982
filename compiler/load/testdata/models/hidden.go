//go:build hidden

package models

type Hidden struct {
	ID int64 `db:"id,autoincrement"`
}
