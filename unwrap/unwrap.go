// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package unwrap turns errors that cannot happen into panics.
//
// It is meant for values built from data compiled into the binary, such as
// the built-in file type table or the embedded templates, where an error
// means a broken build rather than bad input.
package unwrap

import "fmt"

// Value returns val if err is nil. Otherwise it panics with an error
// naming what was being built.
func Value[T any](what string, val T, err error) T {
	if err != nil {
		panic(fmt.Errorf("%s: %w", what, err))
	}
	return val
}
