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

package multierr

import (
	"errors"
	"strings"
)

// MultiErr aggregates the errors of a multi-step cleanup sequence so every
// step can be attempted and no failure is dropped.
type MultiErr struct {
	errors []error
}

func NewMultiErr() *MultiErr {
	return &MultiErr{}
}

// Append records err if non-nil and returns the receiver for chaining.
func (me *MultiErr) Append(err error) *MultiErr {
	if err != nil {
		me.errors = append(me.errors, err)
	}

	return me
}

func (me *MultiErr) HasErrors() bool {
	return len(me.errors) > 0
}

func (me *MultiErr) Errors() []error {
	return me.errors
}

// Reduce collapses the aggregate: nil when nothing was appended, the single
// error when exactly one was, the aggregate itself otherwise.
func (me *MultiErr) Reduce() error {
	switch len(me.errors) {
	case 0:
		return nil
	case 1:
		return me.errors[0]
	default:
		return me
	}
}

func (me *MultiErr) Is(target error) bool {
	for _, err := range me.errors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func (me *MultiErr) As(target interface{}) bool {
	for _, err := range me.errors {
		if errors.As(err, target) {
			return true
		}
	}

	return false
}

func (me *MultiErr) Error() string {
	msgs := make([]string, len(me.errors))
	for i, err := range me.errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
