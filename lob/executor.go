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
	"errors"
	"fmt"

	"github.com/lobmap/lobmap/multierr"
)

// updateLobColumn runs the full deferred-write protocol: build the locking
// re-select over the entity's identity, execute it on a pooled connection,
// fetch the large-object handle from the single matched row and rewrite its
// content. The caller's transaction must already hold the placeholder row;
// the row lock taken here is kept until that transaction ends, so no
// concurrent writer can obtain a handle to the same row in between.
//
// The cursor, the prepared statement and the connection are closed in that
// nesting order on every exit path, release always last, each attempted even
// if an earlier one failed.
func (m *ClobMapping) updateLobColumn(ctx context.Context, e Entity, value sql.NullString) error {
	if e == nil {
		return fmt.Errorf("%w: nil entity", ErrIllegalArguments)
	}

	t := m.col.Table()

	if !t.IsPrimary() {
		return fmt.Errorf("%w (%s)", ErrUnsupportedTable, t.Name())
	}

	err := m.doUpdateLobColumn(ctx, e, value)
	if err != nil {
		if errors.Is(err, ErrRowNotFound) {
			m.metrics.IncRowsNotFound(t.Name(), m.col.Name())
		} else {
			m.metrics.IncWriteFailures(t.Name(), m.col.Name())
		}
		return err
	}

	m.metrics.IncWrites(t.Name(), m.col.Name())
	return nil
}

func (m *ClobMapping) doUpdateLobColumn(ctx context.Context, e Entity, value sql.NullString) (err error) {
	stmtText, bindings, err := buildLockingSelect(m.col, m.caps)
	if err != nil {
		return err
	}

	// an embedded sub-object does not own the physical row: the identity
	// bound below must be the owning entity's
	e = resolveRowOwner(e)

	args, err := orderedKeyValues(e, bindings)
	if err != nil {
		return err
	}

	m.logger.Debugf("locking re-select %s for identity %v", stmtText, e.ID())

	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return wrapDatastoreErr(stmtText, err)
	}
	defer func() {
		err = appendCleanupErr(err, conn.Release(), stmtText)
	}()

	stmt, err := conn.Prepare(ctx, stmtText)
	if err != nil {
		return wrapDatastoreErr(stmtText, err)
	}
	defer func() {
		err = appendCleanupErr(err, stmt.Close(), stmtText)
	}()

	rows, err := stmt.Query(ctx, args...)
	if err != nil {
		return wrapDatastoreErr(stmtText, err)
	}
	defer func() {
		err = appendCleanupErr(err, rows.Close(), stmtText)
	}()

	if !rows.Next() {
		if rerr := rows.Err(); rerr != nil {
			return wrapDatastoreErr(stmtText, rerr)
		}
		return fmt.Errorf("%w: no row in table %s for identity %v", ErrRowNotFound, m.col.Table().Name(), e.ID())
	}

	handle, err := rows.Lob(1)
	if err != nil {
		return wrapDatastoreErr(stmtText, err)
	}

	if handle == nil {
		// the locked row holds no object at all; nothing to stream into
		m.logger.Warningf("null large-object handle in %s.%s for identity %v, skipping rewrite",
			m.col.Table().Name(), m.col.Name(), e.ID())
		return nil
	}

	return m.rewriteLob(handle, value)
}

// orderedKeyValues lays out the entity's flattened identity values by
// assigned parameter slot. Slots were handed out in the same member order
// KeyValues flattens by, so the layout is a positional identity check plus a
// count validation.
func orderedKeyValues(e Entity, bindings []keyBinding) ([]interface{}, error) {
	values, err := e.KeyValues()
	if err != nil {
		return nil, err
	}

	total := totalSlots(bindings)
	if len(values) != total {
		return nil, fmt.Errorf("%w: got %d identity values, statement requires %d",
			ErrIllegalArguments, len(values), total)
	}

	args := make([]interface{}, total)

	i := 0
	for _, b := range bindings {
		for _, slot := range b.slots {
			args[slot-1] = values[i]
			i++
		}
	}

	return args, nil
}

// appendCleanupErr attaches a cleanup failure to the operation outcome
// without masking either error.
func appendCleanupErr(err, cleanupErr error, stmtText string) error {
	if cleanupErr == nil {
		return err
	}

	cleanupErr = wrapDatastoreErr(stmtText, cleanupErr)
	if err == nil {
		return cleanupErr
	}

	return multierr.NewMultiErr().Append(err).Append(cleanupErr).Reduce()
}
