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

import (
	"io"
	"log"
)

var levelPrefixes = map[LogLevel]string{
	LogDebug: "DEBUG",
	LogInfo:  "INFO",
	LogWarn:  "WARNING",
	LogError: "ERROR",
}

// SimpleLogger writes prefixed, level-filtered lines through the stdlib logger.
type SimpleLogger struct {
	out   *log.Logger
	level LogLevel
}

// NewSimpleLogger ...
func NewSimpleLogger(name string, out io.Writer) Logger {
	return NewSimpleLoggerWithLevel(name, out, LogLevelFromEnvironment())
}

// NewSimpleLoggerWithLevel ...
func NewSimpleLoggerWithLevel(name string, out io.Writer, level LogLevel) Logger {
	return &SimpleLogger{
		out:   log.New(out, name+" ", log.LstdFlags),
		level: level,
	}
}

func (l *SimpleLogger) logf(level LogLevel, f string, v []interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf(levelPrefixes[level]+": "+f, v...)
}

// Errorf ...
func (l *SimpleLogger) Errorf(f string, v ...interface{}) {
	l.logf(LogError, f, v)
}

// Warningf ...
func (l *SimpleLogger) Warningf(f string, v ...interface{}) {
	l.logf(LogWarn, f, v)
}

// Infof ...
func (l *SimpleLogger) Infof(f string, v ...interface{}) {
	l.logf(LogInfo, f, v)
}

// Debugf ...
func (l *SimpleLogger) Debugf(f string, v ...interface{}) {
	l.logf(LogDebug, f, v)
}

// Close ...
func (l *SimpleLogger) Close() error {
	return nil
}
