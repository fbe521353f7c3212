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

// Package sqlite provides error-returning access to embedded SQLite
// databases.
package sqlite

import (
	"context"

	"dirpx.dev/guard"
	"dirpx.dev/guard/args"
	"dirpx.dev/guard/category"
	rt "dirpx.dev/guard/internal/native/sqlite"
	"dirpx.dev/guard/sentinel"
)

// Err matches every error returned by this package.
var Err = guard.Kind(category.Sqlite)

// DB is an open database.
type DB = rt.DB

// Open flags.
const (
	OpenReadOnly  = rt.OpenReadOnly
	OpenReadWrite = rt.OpenReadWrite
	OpenCreate    = rt.OpenCreate
)

var (
	open        = guard.Define(category.Sqlite, "sqlite.sqlite3.open", sentinel.False())
	exec        = guard.Define(category.Sqlite, "sqlite.sqlite3.exec", sentinel.False())
	closeDB     = guard.Define(category.Sqlite, "sqlite.sqlite3.close", sentinel.False())

	// Column values may be false, so the query sites fail on the row
	// output the native leaves unset, never on the value.
	querySingle    = guard.Define(category.Sqlite, "sqlite.sqlite3.query_single", guard.AuxUnset[any, bool]())
	querySingleRow = guard.Define(category.Sqlite, "sqlite.sqlite3.query_single_row", guard.AuxUnset[map[string]any, bool]())
)

// Open opens filename. Use ":memory:" for a private in-memory database.
func Open(ctx context.Context, filename string, flags args.Opt[int]) (*DB, error) {
	return guard.Invoke[*DB](ctx, open, rt.Open, []any{filename}, flags)
}

// Exec runs statements that return no rows.
func Exec(ctx context.Context, db *DB, query string) error {
	_, err := guard.Invoke[bool](ctx, exec, rt.Exec, []any{db, query})
	return err
}

// QuerySingle returns the first column of the first result row, or nil
// when there are no rows.
func QuerySingle(ctx context.Context, db *DB, query string) (any, error) {
	v, _, err := guard.CallOut(ctx, querySingle, func(ctx context.Context) (any, bool, bool) {
		v, found, ok := rt.QuerySingle(ctx, db, query, false)
		return v, found, ok
	})
	return v, err
}

// QuerySingleRow returns the first result row keyed by column name. It is
// empty when there are no rows.
func QuerySingleRow(ctx context.Context, db *DB, query string) (map[string]any, error) {
	row, _, err := guard.CallOut(ctx, querySingleRow, func(ctx context.Context) (map[string]any, bool, bool) {
		v, found, ok := rt.QuerySingle(ctx, db, query, true)
		row, _ := v.(map[string]any)
		return row, found, ok
	})
	return row, err
}

// Close closes db.
func Close(ctx context.Context, db *DB) error {
	_, err := guard.Invoke[bool](ctx, closeDB, rt.Close, []any{db})
	return err
}
