package cli

import (
	"errors"
	"fmt"
	"io"

	prtxt "github.com/jedib0t/go-pretty/v6/text"
	"github.com/npillmayer/scriptlang"
)

// Exit codes of the command
const (
	exitOK          = 0
	exitScriptError = 1
	exitFileError   = 2
)

var colorize = true // colored error headers

// displayError writes err to w, prefixed by a header naming the kind of
// failure, and returns the exit code belonging to it.
func displayError(w io.Writer, err error) int {
	header, code := "[scriptlang: error]", exitScriptError
	switch {
	case errors.Is(err, ErrScriptFile):
		header, code = "[scriptlang: file reading error]", exitFileError
	case scriptlang.KindOf(err) != scriptlang.NoError:
		header = "[scriptlang: script error]"
	}
	if colorize {
		header = prtxt.FgRed.Sprint(header)
	}
	fmt.Fprintf(w, "%s %s\n", header, err.Error())
	return code
}
