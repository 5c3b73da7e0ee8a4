// Package scriptlang is an interpreter for a small line-oriented
// scripting language.
//
// A script is a sequence of statements, one per line:
//
//     # a comment
//     set a = (2 + 3) * 4
//     set b = $a / 3
//     print "a is ", $a, " and b is ", $b
//
// `set` assigns the value of an integer expression to a variable,
// `print` writes string literals and variable values to the output.
// Interpretation stops at the first error.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package scriptlang

import (
	"context"
	"io"
	"os"

	"github.com/knadh/koanf"
)

// Configuration holds global configuration values. We use koanf.
var Configuration *koanf.Koanf

// Tracefile is the file we write our log output, if not nil.
var Tracefile io.WriteCloser

// SignalContext is a global context for terminating the application by an interrupt
// signal.
var SignalContext context.Context = context.Background()

// Exit exits the application. It gracefully shuts down all resources.
func Exit(errcode int) {
	if Tracefile != nil {
		Tracefile.Close()
	}
	os.Exit(errcode)
}
