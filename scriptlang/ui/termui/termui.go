// Package termui provides objects and methods for interactive UI in terminal windows.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
//
package termui

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scriptlang.cli'.
func tracer() tracing.Trace {
	return tracing.Select("scriptlang.cli")
}

// Formatter writes a REPL result item to w. It returns false if it does
// not know how to format the item.
type Formatter interface {
	Format(interface{}, io.Writer) (bool, error)
}

// DefaultFormatter formats strings, errors, variable bindings and tables.
type DefaultFormatter struct{}

func (df DefaultFormatter) Format(item interface{}, w io.Writer) (bool, error) {
	var err error
	switch t := item.(type) {
	case string:
		_, err = fmt.Fprintf(w, "▶ %s\n", t)
	case error:
		_, err = fmt.Fprintf(w, "▶ error: %s\n", t.Error())
	case map[string]int64:
		return df.Format(VariablesTable(t), w)
	case table.Writer:
		if t == nil {
			_, err = io.WriteString(w, "▶ (empty table)\n")
		} else {
			_, err = fmt.Fprintf(w, "%s\n", t.Render())
		}
	default:
		_, err = fmt.Fprintf(w, "▶ object of type %T\n", t)
	}
	return err == nil, err
}

// VariablesTable creates a table of variable bindings, sorted by name.
func VariablesTable(vars map[string]int64) table.Writer {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"variable", "value"})
	for _, name := range names {
		tw.AppendRow(table.Row{name, strconv.FormatInt(vars[name], 10)})
	}
	if len(names) == 0 {
		tw.AppendFooter(table.Row{"", "(no variables)"})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}
