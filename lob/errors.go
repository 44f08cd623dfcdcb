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
	"errors"
	"fmt"
)

var (
	ErrIllegalArguments = errors.New("illegal arguments")
	ErrInvalidOptions   = errors.New("invalid options")

	// ErrColumnDefinition signals a column whose physical definition is
	// incompatible with large-object storage. Detected at mapping
	// construction time.
	ErrColumnDefinition = errors.New("invalid large-object column definition")

	// ErrRowNotFound signals that the locking re-select matched no row for
	// the supplied identity. Never retried.
	ErrRowNotFound = errors.New("target row not found")

	// ErrDatastore covers statement preparation, execution, result access
	// and large-object stream failures.
	ErrDatastore = errors.New("datastore communication error")

	// ErrUnsupportedTable is returned when the protocol is invoked against
	// a non-primary (join) table, which holds no row identity to lock on.
	ErrUnsupportedTable = errors.New("large-object post-processing is not supported on non-primary tables")
)

// DatastoreError wraps a datastore failure together with the statement text
// that provoked it. It matches ErrDatastore and unwraps to the original cause.
type DatastoreError struct {
	Stmt  string
	Cause error
}

func (e *DatastoreError) Error() string {
	if e.Stmt == "" {
		return fmt.Sprintf("%v: %v", ErrDatastore, e.Cause)
	}
	return fmt.Sprintf("%v: %v (statement: %s)", ErrDatastore, e.Cause, e.Stmt)
}

func (e *DatastoreError) Unwrap() error {
	return e.Cause
}

func (e *DatastoreError) Is(target error) bool {
	return target == ErrDatastore
}

func wrapDatastoreErr(stmt string, cause error) error {
	if cause == nil {
		return nil
	}
	return &DatastoreError{Stmt: stmt, Cause: cause}
}
