// Command scriptlang interprets scripts of integer assignments and print
// statements.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/npillmayer/scriptlang"
	"github.com/npillmayer/scriptlang/scriptlang/cli"
)

func main() {
	var stop context.CancelFunc
	scriptlang.SignalContext, stop = signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cli.Execute()
}
