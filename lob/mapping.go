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
	"database/sql"
	"fmt"

	"github.com/lobmap/lobmap/logger"
	"github.com/lobmap/lobmap/metrics"
	"github.com/lobmap/lobmap/schema"
)

// ClobMapping maps an unlimited-length text column whose backend requires
// deferred large-object writes: the row is inserted or updated with an empty
// placeholder expression first, then re-selected under a row lock so the live
// handle can be fetched and the actual content streamed into it.
type ClobMapping struct {
	col            *schema.Column
	pool           Pool
	caps           Capabilities
	logger         logger.Logger
	metrics        metrics.ProtocolMetrics
	readBufferSize int
}

// NewClobMapping validates the column's physical definition and builds the
// mapping. Bounded-length columns are rejected: deferred large-object storage
// requires an unlimited-length declaration.
func NewClobMapping(col *schema.Column, opts *Options) (*ClobMapping, error) {
	if col == nil {
		return nil, fmt.Errorf("%w: nil column", ErrIllegalArguments)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if !col.IsUnlimitedLength() {
		return nil, fmt.Errorf("%w: length specified for column %s.%s, must be unlimited",
			ErrColumnDefinition, col.Table().Name(), col.Name())
	}

	return &ClobMapping{
		col:            col,
		pool:           opts.pool,
		caps:           opts.caps,
		logger:         opts.logger,
		metrics:        opts.metrics,
		readBufferSize: opts.readBufferSize,
	}, nil
}

func (m *ClobMapping) Column() *schema.Column {
	return m.col
}

// InsertPlaceholderExpr is the expression inlined into the INSERT statement
// in place of the actual value, e.g. EMPTY_CLOB().
func (m *ClobMapping) InsertPlaceholderExpr() string {
	return m.caps.EmptyLobExpression()
}

// UpdatePlaceholderExpr is the expression inlined into the UPDATE statement
// in place of the actual value.
func (m *ClobMapping) UpdatePlaceholderExpr() string {
	return m.caps.EmptyLobExpression()
}

// InsertValuesOnInsert reports whether the INSERT binds a value for this
// column. It never does: the placeholder expression is inlined instead.
func (m *ClobMapping) InsertValuesOnInsert() bool {
	return false
}

// IncludeInFetch reports whether the column participates in fetch statements.
func (m *ClobMapping) IncludeInFetch() bool {
	return true
}

// PostInsert completes the deferred write after the placeholder row has been
// inserted, within the same transaction.
func (m *ClobMapping) PostInsert(ctx context.Context, e Entity, value sql.NullString) error {
	return m.updateLobColumn(ctx, e, value)
}

// PostUpdate completes the deferred write after the row has been updated to
// hold a fresh placeholder, within the same transaction.
func (m *ClobMapping) PostUpdate(ctx context.Context, e Entity, value sql.NullString) error {
	return m.updateLobColumn(ctx, e, value)
}

// ReadString decodes the large-object handle held at the 1-based column
// position of the current result row. A null handle and a zero-length object
// both decode to null; the empty-string sentinel decodes to an empty string.
func (m *ClobMapping) ReadString(rows Rows, pos int) (sql.NullString, error) {
	if rows == nil {
		return sql.NullString{}, fmt.Errorf("%w: nil rows", ErrIllegalArguments)
	}

	handle, err := rows.Lob(pos)
	if err != nil {
		m.metrics.IncReadFailures(m.col.Name())
		return sql.NullString{}, wrapDatastoreErr("", fmt.Errorf("reading large-object column at position %d: %w", pos, err))
	}

	value, err := decodeLobString(handle, m.readBufferSize, m.caps.EmptyStringSentinel())
	if err != nil {
		m.metrics.IncReadFailures(m.col.Name())
		return sql.NullString{}, err
	}

	m.metrics.IncReads(m.col.Name())
	return value, nil
}
