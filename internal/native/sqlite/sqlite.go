/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package sqlite is the native embedded database runtime on
// mattn/go-sqlite3.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"dirpx.dev/guard/args"
	"dirpx.dev/guard/internal/native"
)

// Open flags.
const (
	OpenReadOnly  = 0x1
	OpenReadWrite = 0x2
	OpenCreate    = 0x4
)

// BusyTimeout is how long a statement waits for a locked database.
var BusyTimeout = 5 * time.Second

// DB is an open database handle.
type DB struct {
	mu     sync.Mutex
	db     *sql.DB
	path   string
	closed bool
}

// Path returns the filename the database was opened with.
func (d *DB) Path() string { return d.path }

// Open opens a database file, ":memory:" for a private in-memory database.
// argv: filename, flags=OpenReadWrite|OpenCreate.
func Open(ctx context.Context, argv ...any) any {
	const fn = "SQLite3::open"
	if err := args.Check(fn, argv, 1, 2); err != nil {
		return native.Bad(ctx, err)
	}
	name, err := native.String(fn, argv, 0)
	if err != nil {
		return native.Bad(ctx, err)
	}
	flags, err := native.Int(fn, argv, 1, OpenReadWrite|OpenCreate)
	if err != nil {
		return native.Bad(ctx, err)
	}
	if name == "" {
		return native.Fail(ctx, "%s(): Argument #1 ($filename) cannot be empty", fn)
	}

	db, err := sql.Open("sqlite3", dsn(name, flags))
	if err != nil {
		return native.Fail(ctx, "%s(): Unable to open database: %v", fn, err)
	}
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return native.Fail(ctx, "%s(): Unable to open database: %s", fn, message(err))
	}
	return &DB{db: db, path: name}
}

// Exec runs statements that return no rows. argv: db, query.
func Exec(ctx context.Context, argv ...any) any {
	const fn = "SQLite3::exec"
	if err := args.Check(fn, argv, 2, 2); err != nil {
		return native.Bad(ctx, err)
	}
	d, ok := handle(ctx, fn, argv)
	if !ok {
		return false
	}
	query, err := native.String(fn, argv, 1)
	if err != nil {
		return native.Bad(ctx, err)
	}
	if _, err := d.db.ExecContext(ctx, query); err != nil {
		return native.Fail(ctx, "%s(): %s", fn, message(err))
	}
	return true
}

// QuerySingle returns the first column of the first row, or the whole row
// as a map when entire is set. found reports whether a row was returned; it
// is written only when ok. A column value of false is a valid result, so
// success is never inferred from v.
func QuerySingle(ctx context.Context, d *DB, query string, entire bool) (v any, found, ok bool) {
	const fn = "SQLite3::querySingle"
	if d, ok = handle(ctx, fn, []any{d}); !ok {
		return nil, false, false
	}

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		native.Fail(ctx, "%s(): Unable to prepare statement: %s", fn, message(err))
		return nil, false, false
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		native.Fail(ctx, "%s(): %s", fn, message(err))
		return nil, false, false
	}
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			native.Fail(ctx, "%s(): Unable to execute statement: %s", fn, message(err))
			return nil, false, false
		}
		if entire {
			return map[string]any{}, false, true
		}
		return nil, false, true
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		native.Fail(ctx, "%s(): Unable to execute statement: %s", fn, message(err))
		return nil, false, false
	}
	if !entire {
		if len(vals) == 0 {
			return nil, true, true
		}
		return vals[0], true, true
	}
	row := make(map[string]any, len(cols))
	for i, c := range cols {
		row[c] = vals[i]
	}
	return row, true, true
}

// Close closes the database. argv: db.
func Close(ctx context.Context, argv ...any) any {
	const fn = "SQLite3::close"
	if err := args.Check(fn, argv, 1, 1); err != nil {
		return native.Bad(ctx, err)
	}
	d, ok := handle(ctx, fn, argv)
	if !ok {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.db.Close(); err != nil {
		return native.Fail(ctx, "%s(): Unable to close database: %s", fn, message(err))
	}
	d.closed = true
	return true
}

func handle(ctx context.Context, fn string, argv []any) (*DB, bool) {
	d, err := args.Arg[*DB](fn, argv, 0, nil)
	if err != nil {
		native.Bad(ctx, err)
		return nil, false
	}
	if d == nil {
		native.Fail(ctx, "%s(): Argument #1 ($db) must be of type SQLite3, null given", fn)
		return nil, false
	}
	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed {
		native.Fail(ctx, "%s(): The SQLite3 object has not been correctly initialised or is already closed", fn)
		return nil, false
	}
	return d, true
}

func dsn(name string, flags int) string {
	mode := "rw"
	switch {
	case flags&OpenReadOnly != 0:
		mode = "ro"
	case flags&OpenCreate != 0:
		mode = "rwc"
	}
	q := url.Values{}
	q.Set("_busy_timeout", fmt.Sprint(BusyTimeout.Milliseconds()))
	if name != ":memory:" {
		q.Set("mode", mode)
	}
	return "file:" + name + "?" + q.Encode()
}

func message(err error) string {
	return strings.TrimSpace(err.Error())
}
