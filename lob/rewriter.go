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
	"database/sql"
	"fmt"
	"strings"
)

// WritePath tags the large-object write interface generation of the
// connected backend driver.
type WritePath int

const (
	// WritePathStandard uses the standard stream/string-set interface.
	WritePathStandard WritePath = iota

	// WritePathLegacy uses the raw position+string interface of older
	// driver generations.
	WritePathLegacy
)

// LegacyOracleDriverName is the advertised name of the Oracle driver
// generations whose large objects expose only the legacy write interface.
const LegacyOracleDriverName = "oracle"

// legacyMaxMajorVersion: drivers of major version 10 and above expose the
// standard interface.
const legacyMaxMajorVersion = 10

// writePathFor resolves the compatible write path from the connected
// backend's driver name and version. This is the single place backend
// generations are special-cased.
func writePathFor(caps Capabilities) WritePath {
	if strings.EqualFold(caps.DriverName(), LegacyOracleDriverName) &&
		caps.DriverMajorVersion() < legacyMaxMajorVersion {
		return WritePathLegacy
	}
	return WritePathStandard
}

// large-object character offsets are 1-based
const lobContentOffset = 1

// rewriteLob streams the supplied content into the fetched handle, replacing
// whatever the placeholder currently holds. An absent value leaves the
// placeholder untouched; an empty string is stored as the backend's sentinel
// token. No partial-write recovery is attempted: on failure the surrounding
// transaction is expected to roll back.
func (m *ClobMapping) rewriteLob(handle Lob, value sql.NullString) error {
	if !value.Valid {
		return nil
	}

	content := value.String
	if content == "" {
		content = m.caps.EmptyStringSentinel()
	}

	switch writePathFor(m.caps) {
	case WritePathLegacy:
		w, ok := handle.(LegacyStringWriter)
		if !ok {
			return wrapDatastoreErr("", fmt.Errorf("driver %s v%d requires the legacy large-object write interface, but the handle does not provide it",
				m.caps.DriverName(), m.caps.DriverMajorVersion()))
		}
		if err := w.PutString(lobContentOffset, content); err != nil {
			return wrapDatastoreErr("", err)
		}

	default:
		if err := handle.SetString(lobContentOffset, content); err != nil {
			return wrapDatastoreErr("", err)
		}
	}

	return nil
}
