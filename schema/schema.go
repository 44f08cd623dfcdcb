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

package schema

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalArguments   = errors.New("illegal arguments")
	ErrDuplicatedColumn   = errors.New("duplicated column")
	ErrColumnDoesNotExist = errors.New("column does not exist")
	ErrNoKeyMembers       = errors.New("application identity requires at least one key member")
	ErrColumnNotInTable   = errors.New("column does not belong to table")
)

// IdentityKind distinguishes how rows of a table are uniquely addressed.
type IdentityKind int

const (
	// SurrogateIdentity addresses rows through a single datastore-assigned key column.
	SurrogateIdentity IdentityKind = iota

	// ApplicationIdentity addresses rows through one or more application-defined
	// key members, each spanning one or more physical columns.
	ApplicationIdentity
)

// Table describes the physical table an entity maps to, including the
// identity metadata needed to uniquely address one row.
type Table struct {
	name       string
	primary    bool
	identity   IdentityKind
	surrogate  *Column
	keyMembers []*KeyMember
	cols       []*Column
	colsByName map[string]*Column
}

// KeyMember is a logical identity member. A member may occupy more than one
// physical column; column order within a member is fixed and significant.
type KeyMember struct {
	name string
	cols []*Column
}

// Column describes a physical column.
type Column struct {
	table     *Table
	name      string
	sqlType   string
	maxLen    int
	unlimited bool
}

// NewTable creates the descriptor of a primary (entity-owning) table.
// Identity metadata is attached afterwards via WithSurrogateKey or WithKeyMember.
func NewTable(name string) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty table name", ErrIllegalArguments)
	}

	return &Table{
		name:       name,
		primary:    true,
		colsByName: make(map[string]*Column),
	}, nil
}

// NewJoinTable creates the descriptor of a secondary (join/link) table.
// Join tables carry no row identity usable by the deferred-write protocol.
func NewJoinTable(name string) (*Table, error) {
	t, err := NewTable(name)
	if err != nil {
		return nil, err
	}

	t.primary = false
	return t, nil
}

func (t *Table) Name() string {
	return t.name
}

// IsPrimary reports whether the table physically owns entity rows. The
// deferred large-object write protocol only operates on primary tables.
func (t *Table) IsPrimary() bool {
	return t.primary
}

func (t *Table) IdentityKind() IdentityKind {
	return t.identity
}

// NewColumn registers a column on the table. maxLen <= 0 declares the column
// as unlimited-length.
func (t *Table) NewColumn(name, sqlType string, maxLen int) (*Column, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty column name", ErrIllegalArguments)
	}

	if _, exists := t.colsByName[name]; exists {
		return nil, fmt.Errorf("%w (%s.%s)", ErrDuplicatedColumn, t.name, name)
	}

	col := &Column{
		table:     t,
		name:      name,
		sqlType:   sqlType,
		maxLen:    maxLen,
		unlimited: maxLen <= 0,
	}

	t.cols = append(t.cols, col)
	t.colsByName[name] = col

	return col, nil
}

func (t *Table) ColumnByName(name string) (*Column, error) {
	col, exists := t.colsByName[name]
	if !exists {
		return nil, fmt.Errorf("%w (%s.%s)", ErrColumnDoesNotExist, t.name, name)
	}
	return col, nil
}

// WithSurrogateKey declares the table as surrogate-identified through col.
func (t *Table) WithSurrogateKey(col *Column) (*Table, error) {
	if col == nil {
		return nil, fmt.Errorf("%w: nil column", ErrIllegalArguments)
	}

	if col.table != t {
		return nil, fmt.Errorf("%w (%s)", ErrColumnNotInTable, col.name)
	}

	t.identity = SurrogateIdentity
	t.surrogate = col
	t.keyMembers = nil

	return t, nil
}

// WithKeyMember appends an application-identity key member spanning cols,
// in the given order. Member order across calls is the order later used for
// predicate construction and positional value binding.
func (t *Table) WithKeyMember(name string, cols ...*Column) (*Table, error) {
	if name == "" || len(cols) == 0 {
		return nil, fmt.Errorf("%w: key member requires a name and at least one column", ErrIllegalArguments)
	}

	for _, col := range cols {
		if col == nil {
			return nil, fmt.Errorf("%w: nil column", ErrIllegalArguments)
		}
		if col.table != t {
			return nil, fmt.Errorf("%w (%s)", ErrColumnNotInTable, col.name)
		}
	}

	t.identity = ApplicationIdentity
	t.surrogate = nil
	t.keyMembers = append(t.keyMembers, &KeyMember{name: name, cols: cols})

	return t, nil
}

// KeyMembers normalizes both identity kinds into the ordered member list the
// write protocol binds against. Surrogate identity yields a single synthetic
// member over the surrogate column.
func (t *Table) KeyMembers() ([]*KeyMember, error) {
	if t.identity == SurrogateIdentity {
		if t.surrogate == nil {
			return nil, fmt.Errorf("%w: surrogate key column not set on table %s", ErrIllegalArguments, t.name)
		}
		return []*KeyMember{{name: t.surrogate.name, cols: []*Column{t.surrogate}}}, nil
	}

	if len(t.keyMembers) == 0 {
		return nil, fmt.Errorf("%w (%s)", ErrNoKeyMembers, t.name)
	}

	return t.keyMembers, nil
}

// KeyColumnCount is the total number of physical columns across all identity
// members, i.e. the number of parameter slots the locking select consumes.
func (t *Table) KeyColumnCount() (int, error) {
	members, err := t.KeyMembers()
	if err != nil {
		return 0, err
	}

	n := 0
	for _, m := range members {
		n += len(m.cols)
	}
	return n, nil
}

func (m *KeyMember) Name() string {
	return m.name
}

func (m *KeyMember) Columns() []*Column {
	return m.cols
}

func (c *Column) Name() string {
	return c.name
}

func (c *Column) Table() *Table {
	return c.table
}

func (c *Column) Type() string {
	return c.sqlType
}

func (c *Column) MaxLen() int {
	return c.maxLen
}

// IsUnlimitedLength reports whether the column was declared without a length
// bound. Large-object mappings require unlimited-length columns.
func (c *Column) IsUnlimitedLength() bool {
	return c.unlimited
}
