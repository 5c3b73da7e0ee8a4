package termui

// Utilities for interactive command line interfaces.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
	"github.com/npillmayer/scriptlang"
)

// Some global defaults
var welcomeMessage = "Welcome to %s [V%s]"

// BaseREPL is a base type to instantiate a REPL interpreter.
// Concrete REPL implementations will usually use this as a base type.
type BaseREPL struct {
	Interpreter REPLCommandInterpreter // the interpreter this REPL runs for
	Variables   VariableHolder         // variables to display and reset, may be nil
	Formatter   Formatter              // formats results of internal commands
	Helper      func(io.Writer)        // print out help information
	readline    *readline.Instance
	toolname    string
	version     string
	editmode    string
	commands    map[string]internalCommand
}

// REPLCommandInterpreter is an interface all interpreters have to implement.
// It is the workhorse doing interpretation of interactive
// commands.
//
// The REPL will delegate interpreting command strings (i.e. those which do not represent
// internal administrative commands) to the interpreter.
type REPLCommandInterpreter interface {
	InterpretCommand(string)
}

// VariableHolder gives the REPL access to the variables of an interpreter
// for the internal commands 'vars' and 'reset'.
type VariableHolder interface {
	Variables() map[string]int64
	Reset()
}

// internalCommand is an administrative command of the REPL. args includes
// the command word. If run returns true, the REPL terminates.
type internalCommand struct {
	usage string
	help  string
	run   func(repl *BaseREPL, args []string, line string) bool
}

// NewBaseREPL create a new REPL base object intialized for an interpreter tool
// and a given version. Input history is kept in histfile; if histfile is
// empty, it goes to the temp directory.
func NewBaseREPL(toolname, version, histfile string) (*BaseREPL, error) {
	if histfile == "" {
		histfile = filepath.Join(os.TempDir(), toolname+"-repl-history.tmp")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              defaultPrompt(toolname),
		HistoryFile:         histfile,
		AutoComplete:        replCompleter,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterReplInput,
	})
	if err != nil {
		return nil, err
	}
	return &BaseREPL{
		Formatter: DefaultFormatter{},
		readline:  rl,
		toolname:  toolname,
		version:   version,
		editmode:  "emacs",
		commands:  internalCommands(),
	}, nil
}

func internalCommands() map[string]internalCommand {
	return map[string]internalCommand{
		"help": {"help", "print this message", func(repl *BaseREPL, _ []string, _ string) bool {
			repl.displayCommands(repl.readline.Stderr())
			if repl.Helper != nil {
				repl.Helper(repl.readline.Stderr())
			}
			return false
		}},
		"bye": {"bye", "quit application", func(repl *BaseREPL, _ []string, _ string) bool {
			io.WriteString(repl.readline.Stderr(), "> goodbye!\n")
			return true
		}},
		"mode": {"mode [mode]", "display or set current editing mode", (*BaseREPL).setMode},
		"setprompt": {"setprompt [prompt]", "set current prompt [to default]", func(repl *BaseREPL, _ []string, line string) bool {
			repl.readline.SetPrompt(promptFrom(line, repl.toolname))
			return false
		}},
		"vars": {"vars", "list all variables", func(repl *BaseREPL, _ []string, _ string) bool {
			repl.show(repl.Variables.Variables())
			return false
		}},
		"reset": {"reset", "forget all variables", func(repl *BaseREPL, _ []string, _ string) bool {
			repl.Variables.Reset()
			io.WriteString(repl.readline.Stderr(), "> variables reset\n")
			return false
		}},
	}
}

// needsVariables lists internal commands available only with a VariableHolder.
var needsVariables = map[string]bool{"vars": true, "reset": true}

// Completer-tree for interactive sub-commands and statements
var replCompleter = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("bye"),
	readline.PcItem("mode",
		readline.PcItem("vi"),
		readline.PcItem("emacs"),
	),
	readline.PcItem("setprompt"),
	readline.PcItem("vars"),
	readline.PcItem("reset"),
	readline.PcItem("set"),
	readline.PcItem("print"),
)

// displayCommands prints a help message with the internal commands,
// sorted by name.
func (repl *BaseREPL) displayCommands(out io.Writer) {
	fmt.Fprintf(out, welcomeMessage, repl.toolname, repl.version)
	io.WriteString(out, "\n\nThe following commands are available:\n\n")
	names := make([]string, 0, len(repl.commands))
	for name := range repl.commands {
		if needsVariables[name] && repl.Variables == nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := repl.commands[name]
		fmt.Fprintf(out, "  %-18s : %s\n", c.usage, c.help)
	}
}

// Outputs returns stdout and stderr of this REPL.
func (repl *BaseREPL) Outputs() (io.Writer, io.Writer) {
	return repl.readline.Stdout(), repl.readline.Stderr()
}

// Prompt enters a REPL and executes commands.
// Commands are either internal administrative (setprompt, help, etc.)
// or interpreted statements. The REPL ends on 'bye', end of input, an
// interrupt on an empty line, or cancellation of scriptlang.SignalContext.
func (repl *BaseREPL) Prompt(exitOnBye bool) {
	defer repl.readline.Close()
	fmt.Fprintf(repl.readline.Stderr(), welcomeMessage+"\n", repl.toolname, repl.version)
	for scriptlang.SignalContext.Err() == nil {
		line, err := repl.readline.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		if repl.execute(strings.TrimSpace(line)) {
			break
		}
	}
	if exitOnBye {
		scriptlang.Exit(0)
	}
}

// execute runs an internal command or hands the line over to the
// interpreter. Internal commands take precedence only if they match the
// first word of the line. If execute returns true, the REPL should
// terminate.
func (repl *BaseREPL) execute(line string) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false
	}
	if c, ok := repl.lookup(args); ok {
		return c.run(repl, args, line)
	}
	if repl.Interpreter != nil {
		tracer().Debugf("call interpreter on: '%s'", line)
		repl.Interpreter.InterpretCommand(line)
	}
	return false
}

// lookup finds the internal command for a line split into args. 'vars'
// and 'reset' take no arguments and need variables to work on.
func (repl *BaseREPL) lookup(args []string) (internalCommand, bool) {
	c, ok := repl.commands[args[0]]
	if !ok {
		return c, false
	}
	if needsVariables[args[0]] && (repl.Variables == nil || len(args) > 1) {
		return c, false
	}
	return c, true
}

func (repl *BaseREPL) setMode(args []string, _ string) bool {
	if len(args) > 1 {
		switch args[1] {
		case "vi", "emacs":
			repl.readline.SetVimMode(args[1] == "vi")
			repl.editmode = args[1]
			return false
		}
	}
	fmt.Fprintf(repl.readline.Stderr(), "> current input mode: %s\n", repl.editmode)
	return false
}

// promptFrom extracts the new prompt from a 'setprompt' line.
func promptFrom(line string, toolname string) string {
	const cmdlen = len("setprompt ")
	if len(line) <= cmdlen {
		return defaultPrompt(toolname)
	}
	return line[cmdlen:] + " "
}

func defaultPrompt(toolname string) string {
	return prtxt.FgGreen.Sprintf("%s> ", toolname)
}

func (repl *BaseREPL) show(item interface{}) {
	f := repl.Formatter
	if f == nil {
		f = DefaultFormatter{}
	}
	if ok, err := f.Format(item, repl.readline.Stdout()); !ok {
		tracer().Errorf("cannot display %T: %v", item, err)
	}
}

// Input filter for REPL. Blocks ctrl-z.
func filterReplInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
