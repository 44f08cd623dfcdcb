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
	"io"

	"github.com/lobmap/lobmap/schema"
)

// Pool hands out pooled connections. Connections are checked out exclusively
// for the duration of one protocol invocation and released on every exit path.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
}

// Conn is a checked-out connection.
type Conn interface {
	Prepare(ctx context.Context, sqlText string) (Stmt, error)
	Release() error
}

// Stmt is a prepared statement. Arguments are bound strictly positionally,
// in ascending parameter-slot order.
type Stmt interface {
	Query(ctx context.Context, args ...interface{}) (Rows, error)
	Close() error
}

// Rows is a result cursor.
type Rows interface {
	Next() bool

	// Lob extracts the large-object handle held at the 1-based column
	// position. A SQL NULL yields (nil, nil).
	Lob(pos int) (Lob, error)

	Err() error
	Close() error
}

// Lob is an opaque handle into the current value of a large-object column.
// It is valid only while the cursor and connection that produced it are open
// and must never be retained beyond the protocol invocation.
type Lob interface {
	// SetString replaces content starting at the 1-based character offset.
	SetString(pos int64, content string) error

	// CharacterStream opens the handle's content for reading.
	CharacterStream() (io.ReadCloser, error)
}

// LegacyStringWriter is the non-standard write interface exposed by older
// driver generations. Selected via the backend capability check.
type LegacyStringWriter interface {
	PutString(pos int64, content string) error
}

// Capabilities describes the connected backend so the protocol can pick the
// compatible statement shape and large-object write path at runtime.
type Capabilities interface {
	DriverName() string
	DriverMajorVersion() int

	// Placeholder renders the positional parameter marker for a 1-based slot.
	Placeholder(slot int) string

	// EmptyStringSentinel is the reserved token stored in place of the empty
	// string, which the backend cannot distinguish from "no value".
	EmptyStringSentinel() string

	// EmptyLobExpression is the placeholder expression written at row
	// creation time, e.g. EMPTY_CLOB().
	EmptyLobExpression() string
}

// Entity is the runtime handle of a persisted object.
type Entity interface {
	Table() *schema.Table

	// ID identifies the entity for diagnostics only.
	ID() interface{}

	// KeyValues returns one value per physical identity column, flattened in
	// key-member order. The ordering must match the table's key metadata:
	// binding is strictly positional.
	KeyValues() ([]interface{}, error)

	// EmbeddedOwner returns the entity this one is embedded into, or nil
	// when the entity owns its row.
	EmbeddedOwner() Entity
}

// resolveRowOwner walks up to the entity whose table physically holds the
// row being locked. The passed-in entity is never mutated.
func resolveRowOwner(e Entity) Entity {
	for {
		owner := e.EmbeddedOwner()
		if owner == nil || owner == e {
			return e
		}
		e = owner
	}
}
