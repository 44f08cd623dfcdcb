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

package lob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lobmap/lobmap/schema"
)

// fakeCaps describes a made-up backend for protocol tests.
type fakeCaps struct {
	driverName   string
	majorVersion int
	sentinel     string
	placeholder  func(slot int) string
}

func oracleStyleCaps() *fakeCaps {
	return &fakeCaps{
		driverName:   "oracle",
		majorVersion: 12,
		sentinel:     "",
	}
}

func (c *fakeCaps) DriverName() string {
	return c.driverName
}

func (c *fakeCaps) DriverMajorVersion() int {
	return c.majorVersion
}

func (c *fakeCaps) Placeholder(slot int) string {
	if c.placeholder != nil {
		return c.placeholder(slot)
	}
	return "?"
}

func (c *fakeCaps) EmptyStringSentinel() string {
	return c.sentinel
}

func (c *fakeCaps) EmptyLobExpression() string {
	return "EMPTY_CLOB()"
}

// fakeStore holds one large object per identity-value fingerprint,
// standing in for the locked rows of a single table.
type fakeStore struct {
	rows map[string]Lob
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]Lob)}
}

func rowKey(args []interface{}) string {
	return fmt.Sprintf("%v", args)
}

// putRow simulates the placeholder insertion: the row exists and holds an
// empty large object.
func (s *fakeStore) putRow(lob Lob, args ...interface{}) {
	s.rows[rowKey(args)] = lob
}

type fakeLob struct {
	content    string
	setCalls   int
	failWrite  error
	failStream error
	openReads  int
	closeReads int
	failRead   error
}

func (l *fakeLob) SetString(pos int64, content string) error {
	if l.failWrite != nil {
		return l.failWrite
	}
	if pos != 1 {
		return fmt.Errorf("unexpected write offset %d", pos)
	}
	l.setCalls++
	l.content = content
	return nil
}

func (l *fakeLob) CharacterStream() (io.ReadCloser, error) {
	if l.failStream != nil {
		return nil, l.failStream
	}
	l.openReads++
	return &fakeLobReader{lob: l, r: strings.NewReader(l.content)}, nil
}

type fakeLobReader struct {
	lob *fakeLob
	r   *strings.Reader
}

func (r *fakeLobReader) Read(p []byte) (int, error) {
	if r.lob.failRead != nil {
		return 0, r.lob.failRead
	}
	return r.r.Read(p)
}

func (r *fakeLobReader) Close() error {
	r.lob.closeReads++
	return nil
}

// legacyFakeLob additionally exposes the legacy position+string interface.
type legacyFakeLob struct {
	fakeLob
	putCalls int
}

func (l *legacyFakeLob) PutString(pos int64, content string) error {
	if l.failWrite != nil {
		return l.failWrite
	}
	if pos != 1 {
		return fmt.Errorf("unexpected write offset %d", pos)
	}
	l.putCalls++
	l.content = content
	return nil
}

type fakePool struct {
	store       *fakeStore
	failAcquire error

	// onAcquire, when set, tweaks every checked-out connection before use
	onAcquire func(*fakeConn)

	acquired int
	released int
	conns    []*fakeConn
}

func newFakePool(store *fakeStore) *fakePool {
	return &fakePool{store: store}
}

func (p *fakePool) Acquire(ctx context.Context) (Conn, error) {
	if p.failAcquire != nil {
		return nil, p.failAcquire
	}
	p.acquired++

	conn := &fakeConn{pool: p}
	if p.onAcquire != nil {
		p.onAcquire(conn)
	}
	p.conns = append(p.conns, conn)
	return conn, nil
}

type fakeConn struct {
	pool        *fakePool
	failPrepare error
	failRelease error

	// onPrepare, when set, tweaks every prepared statement before use
	onPrepare func(*fakeStmt)

	released bool
	stmts    []*fakeStmt
}

func (c *fakeConn) Prepare(ctx context.Context, sqlText string) (Stmt, error) {
	if c.failPrepare != nil {
		return nil, c.failPrepare
	}

	stmt := &fakeStmt{conn: c, text: sqlText}
	if c.onPrepare != nil {
		c.onPrepare(stmt)
	}
	c.stmts = append(c.stmts, stmt)
	return stmt, nil
}

func (c *fakeConn) Release() error {
	c.released = true
	c.pool.released++
	return c.failRelease
}

type fakeStmt struct {
	conn      *fakeConn
	text      string
	failQuery error

	closed    bool
	boundArgs []interface{}
	rows      []*fakeRows
}

func (s *fakeStmt) Query(ctx context.Context, args ...interface{}) (Rows, error) {
	if s.failQuery != nil {
		return nil, s.failQuery
	}

	s.boundArgs = args

	lob, present := s.conn.pool.store.rows[rowKey(args)]

	rows := &fakeRows{lob: lob, present: present}
	s.rows = append(s.rows, rows)
	return rows, nil
}

func (s *fakeStmt) Close() error {
	s.closed = true
	return nil
}

type fakeRows struct {
	lob     Lob
	present bool

	consumed  bool
	closed    bool
	failClose error
	failLob   error
	err       error
}

func (r *fakeRows) Next() bool {
	if r.consumed || !r.present {
		return false
	}
	r.consumed = true
	return true
}

func (r *fakeRows) Lob(pos int) (Lob, error) {
	if r.failLob != nil {
		return nil, r.failLob
	}
	if pos != 1 {
		return nil, fmt.Errorf("unexpected column position %d", pos)
	}
	return r.lob, nil
}

func (r *fakeRows) Err() error {
	return r.err
}

func (r *fakeRows) Close() error {
	r.closed = true
	return r.failClose
}

type fakeEntity struct {
	table     *schema.Table
	id        interface{}
	keyValues []interface{}
	keyErr    error
	owner     Entity
}

func (e *fakeEntity) Table() *schema.Table {
	return e.table
}

func (e *fakeEntity) ID() interface{} {
	return e.id
}

func (e *fakeEntity) KeyValues() ([]interface{}, error) {
	if e.keyErr != nil {
		return nil, e.keyErr
	}
	return e.keyValues, nil
}

func (e *fakeEntity) EmbeddedOwner() Entity {
	return e.owner
}

type countingMetrics struct {
	writes        int
	writeFailures int
	rowsNotFound  int
	reads         int
	readFailures  int
}

func (m *countingMetrics) IncWrites(table, column string)        { m.writes++ }
func (m *countingMetrics) IncWriteFailures(table, column string) { m.writeFailures++ }
func (m *countingMetrics) IncRowsNotFound(table, column string)  { m.rowsNotFound++ }
func (m *countingMetrics) IncReads(column string)                { m.reads++ }
func (m *countingMetrics) IncReadFailures(column string)         { m.readFailures++ }
