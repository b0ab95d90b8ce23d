// +build !debug

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

// Package assert offers a single Assert helper gated by a build tag, so
// invariant checks can be written throughout the engine without any cost
// in a release build.
package assert

import "fmt"

func init() {
	fmt.Println("RELEASE MODE")
}

// DEBUG is true when asserts are evaluated.
const DEBUG = false

// Assert is a no-op in release builds. The GO compiler eliminates calls
// to it once DEBUG is a false constant, but arguments are still
// evaluated, so callers should guard expensive arguments with
// "if assert.DEBUG { ... }" around the call.
func Assert(test bool, msg string, a ...interface{}) {}
