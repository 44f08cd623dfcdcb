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
	"github.com/lobmap/lobmap/schema"
)

// keyBinding associates one identity key member with the parameter slots its
// physical columns occupy in the prepared statement, in column order.
type keyBinding struct {
	member *schema.KeyMember
	slots  []int
}

// bindIdentityKey produces one binding per identity key member, in the fixed
// member order of the table. Slot numbers are 1-based and assigned
// consecutively: single-column members consume one slot, multi-column members
// a contiguous run equal to their column count.
func bindIdentityKey(t *schema.Table) ([]keyBinding, error) {
	members, err := t.KeyMembers()
	if err != nil {
		return nil, err
	}

	bindings := make([]keyBinding, 0, len(members))

	slot := 1
	for _, m := range members {
		run := make([]int, len(m.Columns()))
		for i := range run {
			run[i] = slot
			slot++
		}
		bindings = append(bindings, keyBinding{member: m, slots: run})
	}

	return bindings, nil
}

// totalSlots is the number of parameter slots the bindings consume, i.e. the
// total physical column count across all identity members.
func totalSlots(bindings []keyBinding) int {
	n := 0
	for _, b := range bindings {
		n += len(b.slots)
	}
	return n
}
