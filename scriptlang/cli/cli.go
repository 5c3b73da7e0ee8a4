// Package cli implements the scriptlang command line interface.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/scriptlang"
	"github.com/npillmayer/scriptlang/evaluator"
	"github.com/npillmayer/scriptlang/scriptlang/ui/termui"
	"github.com/spf13/cobra"
)

const version = "0.1 experimental"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scriptlang [script]",
	Short: "An interpreter for a small line-oriented scripting language",
	Long: `Welcome to ScriptLang V0.1 (experimental)

ScriptLang interprets scripts of integer assignments and print statements,
one statement per line:

    # comment
    set a = (2 + 3) * 4
    print "a is ", $a

ScriptLang is able to run a script file in batch-mode or to execute
statements in interactive mode.  If no script file is given, or the -i
flag is set, it will prompt for user input in a terminal REPL.

`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScriptlangCmd,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called exactly once by main().
func Execute() {
	rootCmd.AddCommand(watchCmd)
	if rootCmd.Execute() != nil {
		scriptlang.Exit(exitFileError)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// persistent flags which will be global for the application
	flags := rootCmd.PersistentFlags()
	flags.BoolP("interactive", "i", false, "Force run in interactive mode")
	flags.String("logfile", "stderr", "URL of log output location")
	flags.Bool("debug", false, "Trace at debug level")
	flags.StringSlice("extensions", DefaultExtensions, "Accepted script file extensions")
}

func runScriptlangCmd(cmd *cobra.Command, args []string) {
	k := scriptlang.Configuration
	interactive := len(args) == 0 || (k != nil && k.Bool("interactive"))
	if !interactive {
		scriptlang.Exit(runBatch(args[0], os.Stdout, os.Stderr))
	}
	runInteractive(args)
}

// runBatch executes a script file and returns the exit code.
func runBatch(path string, stdout, stderr io.Writer) int {
	tracing.Infof("scriptlang batch run of %s", path)
	lines, err := ReadScript(path, acceptedExtensions(scriptlang.Configuration))
	if err != nil {
		return displayError(stderr, err)
	}
	intp := evaluator.NewInterpreter(stdout)
	if err := intp.Run(lines); err != nil {
		return displayError(stderr, err)
	}
	return exitOK
}

func runInteractive(args []string) {
	tracing.Infof("scriptlang interpreter called")
	paths := locateLogFile()
	repl, err := termui.NewBaseREPL("scriptlang", version, paths.HistoryFile())
	if err != nil {
		displayError(os.Stderr, err)
		scriptlang.Exit(exitScriptError)
	}
	stdout, _ := repl.Outputs()
	icmd := &scriptlangCmdIntpr{
		BaseREPL: repl,
		intp:     evaluator.NewInterpreter(stdout),
	}
	icmd.Interpreter = icmd
	icmd.Variables = icmd.intp
	icmd.Helper = func(w io.Writer) {
		io.WriteString(w, `
scriptlang will interpret the following statements:

  set <name> = <expression>  : assign an integer expression to a variable
  print "text", $name, ...   : print literals and variable values
  # <comment>                : ignored

`)
	}
	if len(args) > 0 {
		icmd.include(args[0])
	}
	icmd.Prompt(true)
}

type scriptlangCmdIntpr struct {
	*termui.BaseREPL
	intp *evaluator.Interpreter
}

// include runs a script file, keeping its variables for the session.
func (icmd *scriptlangCmdIntpr) include(path string) {
	_, stderr := icmd.Outputs()
	lines, err := ReadScript(path, acceptedExtensions(scriptlang.Configuration))
	if err == nil {
		err = icmd.intp.Include(lines)
	}
	if err != nil {
		displayError(stderr, err)
	}
}

func (icmd *scriptlangCmdIntpr) InterpretCommand(command string) {
	tracer().Debugf("interpreter: %q", command)
	command = strings.Trim(command, "\x00")
	if err := icmd.intp.Exec(command); err != nil {
		_, stderr := icmd.Outputs()
		displayError(stderr, err)
	}
}
