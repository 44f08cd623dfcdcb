/*
Copyright 2024 Lobmap Authors. All rights reserved.

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

// Package pgxlob adapts a pgx transaction to the deferred large-object write
// protocol. PostgreSQL stores large objects outside the row: the column holds
// an oid referencing the object, the placeholder written at row-creation time
// is a freshly created empty object (lo_creat), and the handle fetched by the
// locking re-select is the oid, opened through the transaction's large-object
// API.
package pgxlob

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v4"

	"github.com/lobmap/lobmap/lob"
)

const (
	driverName         = "pgx"
	driverMajorVersion = 4

	// defaultEmptyStringSentinel is stored in place of the empty string so a
	// read can tell it apart from a zero-length placeholder object.
	defaultEmptyStringSentinel = ""
)

// Adapter implements the protocol collaborator interfaces over a caller
// supplied transaction. The transaction demarcates the protocol invocation:
// the row lock taken by the locking re-select is held until the caller
// commits or rolls back.
type Adapter struct {
	tx       pgx.Tx
	sentinel string
}

func New(tx pgx.Tx) *Adapter {
	return &Adapter{
		tx:       tx,
		sentinel: defaultEmptyStringSentinel,
	}
}

func (a *Adapter) WithEmptyStringSentinel(sentinel string) *Adapter {
	a.sentinel = sentinel
	return a
}

// CreateEmpty allocates the placeholder large object referenced by the column
// at row-creation time, returning its oid.
func (a *Adapter) CreateEmpty(ctx context.Context) (uint32, error) {
	los := a.tx.LargeObjects()
	return los.Create(ctx, 0)
}

// Unlink removes a large object, e.g. when the owning row is deleted.
func (a *Adapter) Unlink(ctx context.Context, oid uint32) error {
	los := a.tx.LargeObjects()
	return los.Unlink(ctx, oid)
}

func (a *Adapter) DriverName() string {
	return driverName
}

func (a *Adapter) DriverMajorVersion() int {
	return driverMajorVersion
}

func (a *Adapter) Placeholder(slot int) string {
	return fmt.Sprintf("$%d", slot)
}

func (a *Adapter) EmptyStringSentinel() string {
	return a.sentinel
}

func (a *Adapter) EmptyLobExpression() string {
	return "lo_creat(-1)"
}

// Acquire yields a connection view over the adapter's transaction: the
// transaction already holds the exclusively checked-out connection, so
// Release is a no-op and the connection returns to the pool when the caller
// ends the transaction.
func (a *Adapter) Acquire(ctx context.Context) (lob.Conn, error) {
	return &txConn{a: a}, nil
}

type txConn struct {
	a *Adapter
}

func (c *txConn) Prepare(ctx context.Context, sqlText string) (lob.Stmt, error) {
	// statement text doubles as the statement name: pgx caches by name and
	// re-preparing the same pair is idempotent
	_, err := c.a.tx.Prepare(ctx, sqlText, sqlText)
	if err != nil {
		return nil, err
	}

	return &txStmt{a: c.a, text: sqlText}, nil
}

func (c *txConn) Release() error {
	return nil
}

type txStmt struct {
	a    *Adapter
	text string
}

// Query executes the prepared statement and eagerly drains the single result
// row: PostgreSQL large-object calls issue statements on the same connection,
// which pgx forbids while a cursor is open. The oid outlives the cursor for
// the rest of the transaction, so the handle stays valid.
func (s *txStmt) Query(ctx context.Context, args ...interface{}) (lob.Rows, error) {
	pgRows, err := s.a.tx.Query(ctx, s.text, args...)
	if err != nil {
		return nil, err
	}

	var oid *uint32
	present := false

	if pgRows.Next() {
		if err := pgRows.Scan(&oid); err != nil {
			pgRows.Close()
			return nil, err
		}
		present = true
	}

	pgRows.Close()

	if err := pgRows.Err(); err != nil {
		return nil, err
	}

	return &txRows{a: s.a, ctx: ctx, oid: oid, present: present}, nil
}

func (s *txStmt) Close() error {
	return nil
}

// txRows is the drained single-row cursor. The context captured at query
// time scopes the large-object operations to the same protocol invocation.
type txRows struct {
	a       *Adapter
	ctx     context.Context
	oid     *uint32
	present bool

	consumed bool
}

func (r *txRows) Next() bool {
	if r.consumed || !r.present {
		return false
	}
	r.consumed = true
	return true
}

func (r *txRows) Lob(pos int) (lob.Lob, error) {
	if pos != 1 {
		return nil, fmt.Errorf("no large-object column at position %d", pos)
	}

	if r.oid == nil {
		return nil, nil
	}

	return &largeObject{a: r.a, ctx: r.ctx, oid: *r.oid}, nil
}

func (r *txRows) Err() error {
	return nil
}

func (r *txRows) Close() error {
	return nil
}

// largeObject is the fetched handle: the oid of the object referenced by the
// locked row, opened lazily per operation.
type largeObject struct {
	a   *Adapter
	ctx context.Context
	oid uint32
}

func (l *largeObject) SetString(pos int64, content string) error {
	los := l.a.tx.LargeObjects()

	obj, err := los.Open(l.ctx, l.oid, pgx.LargeObjectModeWrite)
	if err != nil {
		return err
	}

	// protocol offsets are 1-based
	if _, err := obj.Seek(pos-1, io.SeekStart); err != nil {
		obj.Close()
		return err
	}

	if _, err := obj.Write([]byte(content)); err != nil {
		obj.Close()
		return err
	}

	// drop whatever a longer previous value left behind
	if err := obj.Truncate(pos - 1 + int64(len(content))); err != nil {
		obj.Close()
		return err
	}

	return obj.Close()
}

func (l *largeObject) CharacterStream() (io.ReadCloser, error) {
	los := l.a.tx.LargeObjects()
	return los.Open(l.ctx, l.oid, pgx.LargeObjectModeRead)
}
