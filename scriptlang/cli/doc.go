package cli

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'scriptlang.cli'
func tracer() tracing.Trace {
	return tracing.Select("scriptlang.cli")
}
