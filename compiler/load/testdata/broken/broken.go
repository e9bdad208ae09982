package broken

type Broken struct {
	ID int64 `db:"id"`
}

var _ = undefined
