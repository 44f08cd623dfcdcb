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

package logger

var _ Logger = &nopLogger{}

type nopLogger struct{}

// NewNopLogger discards everything logged through it.
func NewNopLogger() Logger {
	return &nopLogger{}
}

func (l *nopLogger) Errorf(string, ...interface{}) {}

func (l *nopLogger) Warningf(string, ...interface{}) {}

func (l *nopLogger) Infof(string, ...interface{}) {}

func (l *nopLogger) Debugf(string, ...interface{}) {}

func (l *nopLogger) Close() error { return nil }
