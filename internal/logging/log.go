/*
 * corechess - chess move generation core
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package logging configures the github.com/op/go-logging backends used
// across the module, reducing the setup to a single call per consumer.
package logging

import (
	"os"

	"github.com/op/go-logging"

	"github.com/anvilchess/corechess/internal/config"
)

var standardLog *logging.Logger
var testLog *logging.Logger

var standardFormat = logging.MustStringFormatter(
	`%{time:2006-01-02 15:04:05.000} %{level:-8s}: %{message}`,
)

// GetLog returns the standard logger, creating it on first use with a
// level sourced from config.LogLevel.
func GetLog() *logging.Logger {
	if standardLog == nil {
		standardLog = logging.MustGetLogger("standard")
		backend := logging.NewLogBackend(os.Stdout, "", 0)
		backendFormatter := logging.NewBackendFormatter(backend, standardFormat)
		backendLeveled := logging.AddModuleLevel(backendFormatter)
		backendLeveled.SetLevel(logging.Level(config.LogLevel), "")
		standardLog.SetBackend(backendLeveled)
	}
	return standardLog
}

// GetTestLog returns the logger used by test files, creating it on
// first use with a level sourced from config.TestLogLevel.
func GetTestLog() *logging.Logger {
	if testLog == nil {
		testLog = logging.MustGetLogger("test")
		backend := logging.NewLogBackend(os.Stdout, "", 0)
		backendFormatter := logging.NewBackendFormatter(backend, standardFormat)
		backendLeveled := logging.AddModuleLevel(backendFormatter)
		backendLeveled.SetLevel(logging.Level(config.TestLogLevel), "")
		testLog.SetBackend(backendLeveled)
	}
	return testLog
}
