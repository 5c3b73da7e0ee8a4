package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/npillmayer/scriptlang"
	"github.com/npillmayer/scriptlang/evaluator"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <script>",
	Short: "Run a script every time it changes",
	Long: `Watch runs a script and re-runs it every time the script file is
written. Every run starts with an empty set of variables. Errors are
displayed and watching continues until interrupted.
`,
	Args: cobra.ExactArgs(1),
	RunE: runWatchCmd,
}

func init() {
	watchCmd.Flags().Duration("debounce", 0, "Delay between a file change and the re-run")
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	delay := debounce(scriptlang.Configuration)
	if cmd.Flags().Changed("debounce") {
		delay, _ = cmd.Flags().GetDuration("debounce")
	}
	w := newScriptWatcher(args[0], acceptedExtensions(scriptlang.Configuration), os.Stdout, os.Stderr)
	w.delay = delay
	return w.Watch(scriptlang.SignalContext)
}

// scriptWatcher re-runs a script file on changes.
type scriptWatcher struct {
	path   string
	exts   []string
	delay  time.Duration
	intp   *evaluator.Interpreter
	stderr io.Writer
}

func newScriptWatcher(path string, exts []string, stdout, stderr io.Writer) *scriptWatcher {
	return &scriptWatcher{
		path:   filepath.Clean(path),
		exts:   exts,
		delay:  200 * time.Millisecond,
		intp:   evaluator.NewInterpreter(stdout),
		stderr: stderr,
	}
}

// run reads and executes the script once. Errors are displayed, not
// returned.
func (w *scriptWatcher) run() {
	lines, err := ReadScript(w.path, w.exts)
	if err == nil {
		err = w.intp.Run(lines)
	}
	if err != nil {
		displayError(w.stderr, err)
	}
}

// Watch runs the script, then waits for changes until ctx is done. The
// directory of the script is watched, as editors often replace files
// instead of writing them.
func (w *scriptWatcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	tracer().Infof("watching %s", w.path)
	w.run()
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != w.path || evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			tracer().Debugf("file event %v", evt)
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.delay)
			fire = timer.C
		case <-fire:
			fire = nil
			w.run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			tracer().Errorf("watching %s: %v", w.path, err)
		}
	}
}
