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
	"io"
	"strings"
)

// decodeLobString streams the handle's full character content into a string
// through a fixed-size buffer. The backend cannot distinguish a true empty
// string from "no object" at this layer, so a zero-length object decodes to
// null and the sentinel token decodes to the empty string. The stream is
// closed on every exit path.
func decodeLobString(handle Lob, bufSize int, sentinel string) (sql.NullString, error) {
	if handle == nil {
		return sql.NullString{}, nil
	}

	in, err := handle.CharacterStream()
	if err != nil {
		return sql.NullString{}, wrapDatastoreErr("", err)
	}

	var sb strings.Builder

	buf := make([]byte, bufSize)

	var readErr error
	for {
		n, err := in.Read(buf)
		if n > 0 {
			sb.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			readErr = err
			break
		}
	}

	closeErr := in.Close()

	if readErr != nil {
		return sql.NullString{}, wrapDatastoreErr("", readErr)
	}
	if closeErr != nil {
		return sql.NullString{}, wrapDatastoreErr("", closeErr)
	}

	value := sb.String()

	if len(value) == 0 {
		return sql.NullString{}, nil
	}

	if value == sentinel {
		return sql.NullString{String: "", Valid: true}, nil
	}

	return sql.NullString{String: value, Valid: true}, nil
}
