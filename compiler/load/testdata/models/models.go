package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/syssam/colflow/adapter"
)

type Status string

type Level int32

// Money is stored in cents.
type Money struct {
	Cents int64
}

// MoneyConverter stores Money as an INTEGER.
type MoneyConverter struct{}

func (MoneyConverter) DBValue(m Money) int64    { return m.Cents }
func (MoneyConverter) ModelValue(c int64) Money { return Money{Cents: c} }

type User struct {
	_       struct{}          `colflow:"people,use_is"`
	ID      int64             `db:"id,autoincrement,quickcheck"`
	Email   string            `db:"email,notnull,unique,collate=NOCASE,on_unique=REPLACE,unique_groups=1"`
	Name    string            `db:"name,length=64,index"`
	Owner   *int64            `db:"owner_id,ref=id" container:"OWNER,nodefault"`
	Status  Status            `db:",default='active'"`
	Level   Level             `db:",index=1|2"`
	Balance Money             `db:",converter=MoneyConverter"`
	Token   uuid.UUID         `db:"token"`
	Avatar  adapter.Blob      `db:"avatar"`
	Created time.Time         `db:"created_at"`
	Tags    []string          `db:"-"`
	Extra   map[string]string `db:"-"`
	active  bool              `db:"active,getter=IsActive"`

	Nickname *string
	cache    []byte
}

func (u *User) IsActive() bool   { return u.active }
func (u *User) SetActive(v bool) { u.active = v }

type Group struct {
	_       struct{} `colflow:",package_private"`
	id      int64    `db:",pk"`
	name    string
	Members []int64
}

// Plain carries no tags and is loaded only when requested by name.
type Plain struct {
	Value string
}

type unexported struct {
	Value string `db:"value"`
}
