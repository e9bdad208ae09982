package adapter

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestMapContainer(t *testing.T) {
	c := NewMapContainer()
	c.Put("name", "alice")
	c.Put("age", int32(30))
	c.Put("score", 1.5)
	c.Put("active", true)
	c.Put("data", []byte("raw"))
	c.PutDefault("nickname")

	assert.Equal(t, "alice", c.StringValue("name"))
	assert.Equal(t, int64(30), c.Int64Value("age"))
	assert.Equal(t, int64(30), c.Value("age"))
	assert.Equal(t, 1.5, c.Float64Value("score"))
	assert.True(t, c.BoolValue("active"))
	assert.Equal(t, []byte("raw"), c.BytesValue("data"))

	assert.True(t, c.Contains("nickname"))
	assert.False(t, c.Has("nickname"))
	assert.False(t, c.Contains("missing"))
	assert.Equal(t, []string{"active", "age", "data", "name", "nickname", "score"}, c.Keys())
}

func TestMapContainer_Pointers(t *testing.T) {
	c := NewMapContainer()
	var unset *int64
	c.Put("unset", unset)
	c.Put("set", Ptr(int64(7)))

	assert.True(t, c.Contains("unset"))
	assert.False(t, c.Has("unset"))
	assert.Nil(t, c.Value("unset"))
	assert.Equal(t, int64(7), c.Value("set"))
}

func TestMapContainer_Time(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c := NewMapContainer()
	c.Put("created", now)
	assert.True(t, now.Equal(c.TimeValue("created")))
}

// The boxed boolean transfer emitted for container-to-model and
// model-to-container keeps the unset state.
func TestBoxedBooleanRoundTrip(t *testing.T) {
	type model struct{ Active *bool }
	for name, stored := range map[string]any{"true": true, "false": false, "unset": nil} {
		t.Run(name, func(t *testing.T) {
			src := NewMapContainer()
			if stored != nil {
				src.Put("active", stored)
			}
			m := &model{}
			m.Active = Nullable(src.Has("active"), src.BoolValue("active"))

			dst := NewMapContainer()
			dst.Put("active", m.Active)
			assert.Equal(t, src.Value("active"), dst.Value("active"))
			assert.Equal(t, src.Has("active"), dst.Has("active"))
		})
	}
}

func TestValues(t *testing.T) {
	v := NewValues()
	v.Put("name", "bob")
	v.Put("age", 42)
	v.PutNull("bio")
	v.Put("name", "carol")

	assert.Equal(t, []string{"name", "age", "bio"}, v.Columns())
	assert.Equal(t, 3, v.Len())
	name, ok := v.Get("name")
	require.True(t, ok)
	assert.Equal(t, "carol", name)
	age, _ := v.Get("age")
	assert.Equal(t, int64(42), age)
	bio, ok := v.Get("bio")
	require.True(t, ok)
	assert.Nil(t, bio)
	_, ok = v.Get("missing")
	assert.False(t, ok)
}

func TestStatement_Bind(t *testing.T) {
	s := NewStatement(3)
	s.Bind(2, "b")
	s.Bind(1, 1)
	s.BindNull(3)
	assert.Equal(t, []any{int64(1), "b", nil}, s.Args())
	assert.Panics(t, func() { s.Bind(0, "x") })
	s.Clear()
	assert.Empty(t, s.Args())
}

func TestStatement_Exec(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	query := "INSERT INTO `users`(`name`,`age`,`active`) VALUES (?,?,?)"
	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs("alice", int64(30), true).
		WillReturnResult(sqlmock.NewResult(7, 1))

	s := NewStatement(3)
	s.Bind(1, "alice")
	s.Bind(2, int32(30))
	s.Bind(3, Ptr(true))
	res, err := s.Exec(context.Background(), db, query)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatement_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT").WillReturnError(sql.ErrConnDone)
	_, err = NewStatement(0).Exec(context.Background(), db, "INSERT INTO t DEFAULT VALUES")
	require.ErrorIs(t, err, sql.ErrConnDone)
	assert.Contains(t, err.Error(), "adapter: exec statement")
}

func TestScanRow(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	_, err = db.ExecContext(ctx, "CREATE TABLE t (name TEXT, active INTEGER, score REAL, data BLOB, note TEXT)")
	require.NoError(t, err)
	s := NewStatement(5)
	s.Bind(1, "bob")
	s.Bind(2, true)
	s.Bind(3, 2.5)
	s.Bind(4, NewBlob([]byte{1, 2, 3}))
	s.BindNull(5)
	_, err = s.Exec(ctx, db, "INSERT INTO t VALUES (?, ?, ?, ?, ?)")
	require.NoError(t, err)

	rows, err := db.QueryContext(ctx, "SELECT name, active, score, data, note FROM t")
	require.NoError(t, err)
	defer rows.Close()
	require.True(t, rows.Next())
	row, err := ScanRow(rows)
	require.NoError(t, err)

	assert.Equal(t, 0, row.ColumnIndex("name"))
	assert.Equal(t, 0, row.ColumnIndex("NAME"))
	assert.Equal(t, -1, row.ColumnIndex("missing"))
	assert.Equal(t, "bob", row.StringValue(row.ColumnIndex("name")))
	assert.True(t, row.BoolValue(row.ColumnIndex("active")))
	assert.Equal(t, int64(1), row.Int64Value(row.ColumnIndex("active")))
	assert.Equal(t, 2.5, row.Float64Value(row.ColumnIndex("score")))
	assert.Equal(t, []byte{1, 2, 3}, row.BytesValue(row.ColumnIndex("data")))
	assert.True(t, row.IsNull(row.ColumnIndex("note")))
	assert.True(t, row.IsNull(42))
	require.NoError(t, rows.Err())
}

func TestProperty(t *testing.T) {
	p := NewProperty[int64]("users", "age")
	assert.Equal(t, "age", p.Name())
	assert.Equal(t, "users", p.Table())
	assert.Equal(t, "`users`.`age`", p.Qualified())
	assert.Equal(t, "age", p.String())
	assert.Equal(t, "`age`", NewProperty[string]("", "age").Qualified())

	b := NewBoolProperty("users", "active")
	assert.Equal(t, "active", b.Name())
	assert.Equal(t, int64(1), b.DBValue(true))
	assert.Equal(t, int64(0), b.DBValue(false))
}

func TestBlob(t *testing.T) {
	src := []byte("payload")
	b := NewBlob(src)
	src[0] = 'X'
	assert.Equal(t, []byte("payload"), b.Bytes())
	v, err := b.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), v)
	assert.Nil(t, BlobPtrBytes(nil))
	assert.Equal(t, []byte("payload"), BlobPtrBytes(&b))
}

func TestConverters(t *testing.T) {
	Register[uuid.UUID, string](UUIDConverter{})

	id := uuid.New()
	assert.Equal(t, id.String(), ToDB(id))
	assert.Equal(t, id, FromDB[uuid.UUID](id.String()))
	assert.Equal(t, id, FromDB[uuid.UUID]([]byte(id.String())))
	assert.Equal(t, uuid.Nil, FromDB[uuid.UUID](nil))
	assert.Nil(t, ToDB(nil))
	assert.Equal(t, uuid.Nil, UUIDConverter{}.ModelValue("not-a-uuid"))

	type unknown struct{}
	assert.Panics(t, func() { ToDB(unknown{}) })
	assert.Panics(t, func() { FromDB[unknown]("x") })
}

func TestHelpers(t *testing.T) {
	type Status string
	assert.Equal(t, 3, *Ptr(3))
	assert.Nil(t, Nullable(false, 3))
	assert.Equal(t, 3, *Nullable(true, 3))
	assert.Nil(t, EnumPtrValue[Status](nil))
	s := Status("active")
	assert.Equal(t, "active", *EnumPtrValue(&s))
	assert.Nil(t, EnumPtr[Status](nil))
	assert.Equal(t, s, *EnumPtr[Status](Ptr("active")))
}

func TestBooleans(t *testing.T) {
	type Flag bool
	assert.Equal(t, int64(1), BoolInt(true))
	assert.Equal(t, int64(0), BoolInt(Flag(false)))
	assert.True(t, IntBool[bool](1))
	assert.True(t, bool(IntBool[Flag](-3)))
	assert.False(t, IntBool[bool](0))

	assert.Nil(t, BoolPtrInt[bool](nil))
	assert.Equal(t, int64(1), *BoolPtrInt(Ptr(true)))
	assert.Nil(t, IntPtrBool[bool](nil))
	assert.False(t, *IntPtrBool[bool](Ptr(int64(0))))

	// A nullable boolean survives the stored form, including unset.
	for _, v := range []*bool{nil, Ptr(true), Ptr(false)} {
		assert.Equal(t, v, IntPtrBool[bool](BoolPtrInt(v)))
	}
}

func TestBlobPtr(t *testing.T) {
	assert.Nil(t, BlobPtr(nil))
	b := BlobPtr([]byte{1})
	require.NotNil(t, b)
	assert.Equal(t, []byte{1}, b.Bytes())
}

func TestConverters_Pointers(t *testing.T) {
	Register[uuid.UUID, string](UUIDConverter{})

	id := uuid.New()
	assert.Equal(t, id.String(), ToDB(&id))
	assert.Nil(t, ToDB((*uuid.UUID)(nil)))
	got := FromDB[*uuid.UUID](id.String())
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
	assert.Nil(t, FromDB[*uuid.UUID](nil))
}
