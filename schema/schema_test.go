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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableCreation(t *testing.T) {
	_, err := NewTable("")
	require.ErrorIs(t, err, ErrIllegalArguments)

	table, err := NewTable("ITEM")
	require.NoError(t, err)
	require.Equal(t, "ITEM", table.Name())
	require.True(t, table.IsPrimary())

	joinTable, err := NewJoinTable("ITEM_TAGS")
	require.NoError(t, err)
	require.False(t, joinTable.IsPrimary())
}

func TestColumnRegistration(t *testing.T) {
	table, err := NewTable("ITEM")
	require.NoError(t, err)

	_, err = table.NewColumn("", "VARCHAR", 100)
	require.ErrorIs(t, err, ErrIllegalArguments)

	col, err := table.NewColumn("DESCRIPTION", "CLOB", 0)
	require.NoError(t, err)
	require.Equal(t, "DESCRIPTION", col.Name())
	require.Equal(t, table, col.Table())
	require.True(t, col.IsUnlimitedLength())

	_, err = table.NewColumn("DESCRIPTION", "CLOB", 0)
	require.ErrorIs(t, err, ErrDuplicatedColumn)

	bounded, err := table.NewColumn("NAME", "VARCHAR", 80)
	require.NoError(t, err)
	require.False(t, bounded.IsUnlimitedLength())
	require.Equal(t, 80, bounded.MaxLen())

	fetched, err := table.ColumnByName("NAME")
	require.NoError(t, err)
	require.Equal(t, bounded, fetched)

	_, err = table.ColumnByName("MISSING")
	require.ErrorIs(t, err, ErrColumnDoesNotExist)
}

func TestSurrogateIdentity(t *testing.T) {
	table, err := NewTable("ITEM")
	require.NoError(t, err)

	_, err = table.KeyMembers()
	require.ErrorIs(t, err, ErrIllegalArguments)

	id, err := table.NewColumn("ID", "BIGINT", 0)
	require.NoError(t, err)

	_, err = table.WithSurrogateKey(nil)
	require.ErrorIs(t, err, ErrIllegalArguments)

	other, err := NewTable("OTHER")
	require.NoError(t, err)
	otherCol, err := other.NewColumn("ID", "BIGINT", 0)
	require.NoError(t, err)

	_, err = table.WithSurrogateKey(otherCol)
	require.ErrorIs(t, err, ErrColumnNotInTable)

	_, err = table.WithSurrogateKey(id)
	require.NoError(t, err)
	require.Equal(t, SurrogateIdentity, table.IdentityKind())

	members, err := table.KeyMembers()
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, "ID", members[0].Name())
	require.Len(t, members[0].Columns(), 1)

	n, err := table.KeyColumnCount()
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestApplicationIdentity(t *testing.T) {
	table, err := NewTable("ORDER_LINE")
	require.NoError(t, err)

	orderID, err := table.NewColumn("ORDER_ID", "BIGINT", 0)
	require.NoError(t, err)
	lineNo, err := table.NewColumn("LINE_NO", "INTEGER", 0)
	require.NoError(t, err)
	regionHi, err := table.NewColumn("REGION_HI", "INTEGER", 0)
	require.NoError(t, err)
	regionLo, err := table.NewColumn("REGION_LO", "INTEGER", 0)
	require.NoError(t, err)

	_, err = table.WithKeyMember("")
	require.ErrorIs(t, err, ErrIllegalArguments)

	_, err = table.WithKeyMember("order", nil)
	require.ErrorIs(t, err, ErrIllegalArguments)

	_, err = table.WithKeyMember("order", orderID)
	require.NoError(t, err)
	_, err = table.WithKeyMember("line", lineNo)
	require.NoError(t, err)
	_, err = table.WithKeyMember("region", regionHi, regionLo)
	require.NoError(t, err)

	require.Equal(t, ApplicationIdentity, table.IdentityKind())

	members, err := table.KeyMembers()
	require.NoError(t, err)
	require.Len(t, members, 3)
	require.Equal(t, "order", members[0].Name())
	require.Equal(t, "line", members[1].Name())
	require.Equal(t, "region", members[2].Name())
	require.Len(t, members[2].Columns(), 2)
	require.Equal(t, "REGION_HI", members[2].Columns()[0].Name())
	require.Equal(t, "REGION_LO", members[2].Columns()[1].Name())

	n, err := table.KeyColumnCount()
	require.NoError(t, err)
	require.Equal(t, 4, n)
}
