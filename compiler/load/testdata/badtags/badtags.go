package badtags

type Bad struct {
	A string `db:"a,length=abc"`
	B string `db:"b,sparkle"`
	C string `db:"c" container:"C,sometimes"`
	D string `db:"d"`
}

type BadTable struct {
	_ struct{} `colflow:"bad,everything"`
	X string   `db:"x"`
}
