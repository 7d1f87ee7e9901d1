//go:build cgo_sqlite

// CGO SQLite driver using mattn/go-sqlite3, selected with the cgo_sqlite
// build tag. The driver import lives in contrib/sqlite-external.
//
// Build with: CGO_ENABLED=1 go build -tags cgo_sqlite ./cmd/vbible
package sqlite

import (
	sqliteexternal "github.com/v-bible/js-sdk/contrib/sqlite-external"
)

const (
	driverName    = sqliteexternal.DriverName
	driverType    = sqliteexternal.DriverType
	driverPackage = sqliteexternal.DriverPackage + " (via contrib/sqlite-external)"
)
