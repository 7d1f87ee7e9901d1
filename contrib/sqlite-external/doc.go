// Package sqliteexternal registers the CGO SQLite driver
// (github.com/mattn/go-sqlite3) for builds that opt into it.
//
// The default build reads SQLite documents with the pure Go driver from
// modernc.org/sqlite and needs no C toolchain. Build with
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./cmd/vbible
//
// to switch core/sqlite, and with it the SQLite document loader, over to the
// CGO driver.
package sqliteexternal
