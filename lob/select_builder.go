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
	"strings"

	"github.com/lobmap/lobmap/schema"
)

// buildLockingSelect constructs the locking re-select
//
//	SELECT <col> FROM <table> WHERE <k1> = ? [AND <ki> = ?]* FOR UPDATE
//
// over the target column's table. One equality predicate is appended per
// physical column of each identity key member, in member order, and the
// returned bindings record the parameter slot each predicate occupies, in
// the same left-to-right order. The row lock taken by FOR UPDATE must be
// held across the subsequent handle fetch and rewrite; without it a
// concurrent writer could obtain a handle to the same row and lose one of
// the two updates.
func buildLockingSelect(col *schema.Column, caps Capabilities) (string, []keyBinding, error) {
	t := col.Table()

	bindings, err := bindIdentityKey(t)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder

	sb.WriteString("SELECT ")
	sb.WriteString(col.Name())
	sb.WriteString(" FROM ")
	sb.WriteString(t.Name())
	sb.WriteString(" WHERE ")

	first := true
	for _, b := range bindings {
		for i, keyCol := range b.member.Columns() {
			if !first {
				sb.WriteString(" AND ")
			}
			first = false

			sb.WriteString(keyCol.Name())
			sb.WriteString(" = ")
			sb.WriteString(caps.Placeholder(b.slots[i]))
		}
	}

	sb.WriteString(" FOR UPDATE")

	return sb.String(), bindings, nil
}
