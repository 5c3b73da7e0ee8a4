package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/knadh/koanf"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/scriptlang"
	"github.com/spf13/pflag"
)

func writeScript(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadScript(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.cli")
	defer teardown()
	//
	path := writeScript(t, "script.txt", "set a = 1", "", "print $a\r")
	lines, err := ReadScript(path, DefaultExtensions)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"set a = 1", "", "print $a"}, lines); diff != "" {
		t.Errorf("lines differ (-want +got):\n%s", diff)
	}
}

func TestReadScriptErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.cli")
	defer teardown()
	//
	dir := t.TempDir()
	md := writeScript(t, "script.md", "print")
	upper := writeScript(t, "script.TXT", "print")
	for i, x := range []struct {
		path string
		msg  string
	}{
		{"  ", "not specified"},
		{filepath.Join(dir, "missing.txt"), "not found"},
		{dir, "not found"},
		{md, "acceptable extensions: txt"},
		{upper, "acceptable extensions: txt"},
	} {
		_, err := ReadScript(x.path, DefaultExtensions)
		if !errors.Is(err, ErrScriptFile) {
			t.Errorf("test %d: expected file reading error, have %v", i, err)
			continue
		}
		if !strings.Contains(err.Error(), x.msg) {
			t.Errorf("test %d: expected message to contain %q, is %q", i, x.msg, err.Error())
		}
	}
	if _, err := ReadScript(md, []string{"txt", "md"}); err != nil {
		t.Errorf("expected 'md' to be accepted, have %v", err)
	}
}

func TestRunBatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.cli")
	defer teardown()
	colorize = false
	//
	var stdout, stderr bytes.Buffer
	path := writeScript(t, "ok.txt", "# sum", "set a = 2 + 3 * 4", `print "a = ", $a`)
	if code := runBatch(path, &stdout, &stderr); code != exitOK {
		t.Errorf("expected exit code 0, is %d: %s", code, stderr.String())
	}
	if stdout.String() != "a = 14\n" {
		t.Errorf("unexpected output %q", stdout.String())
	}
	stdout.Reset()
	path = writeScript(t, "fail.txt", "set a = 1", "foo bar", "print $a")
	if code := runBatch(path, &stdout, &stderr); code != exitScriptError {
		t.Errorf("expected exit code 1, is %d", code)
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no output after failing statement, have %q", stdout.String())
	}
	expected := "[scriptlang: script error] line 2: statement 'foo bar' is invalid: such operation as 'foo' is not supported\n"
	if stderr.String() != expected {
		t.Errorf("unexpected error display %q", stderr.String())
	}
	stderr.Reset()
	if code := runBatch(filepath.Join(t.TempDir(), "none.txt"), &stdout, &stderr); code != exitFileError {
		t.Errorf("expected exit code 2, is %d", code)
	}
	if !strings.HasPrefix(stderr.String(), "[scriptlang: file reading error]") {
		t.Errorf("unexpected error display %q", stderr.String())
	}
}

func TestConfigLayers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.cli")
	defer teardown()
	//
	t.Setenv("SCRIPTLANG_WATCH_DEBOUNCE", "1s")
	t.Setenv("SCRIPTLANG_LOGFILE", "env.log")
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("logfile", "stderr", "")
	flags.Bool("debug", false, "")
	if err := flags.Parse([]string{"--logfile", "flag.log"}); err != nil {
		t.Fatal(err)
	}
	k := koanf.New(".")
	if err := loadLayers(k, flags); err != nil {
		t.Fatal(err)
	}
	if d := debounce(k); d != time.Second {
		t.Errorf("expected debounce from environment to be 1s, is %v", d)
	}
	if l := k.String("logfile"); l != "flag.log" {
		t.Errorf("expected flag to override environment, logfile is %q", l)
	}
	if k.Bool("debug") {
		t.Error("expected debug to default to false")
	}
	if diff := cmp.Diff(DefaultExtensions, acceptedExtensions(k)); diff != "" {
		t.Errorf("extensions differ (-want +got):\n%s", diff)
	}
}

func TestConfigExtensionsFromEnv(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.cli")
	defer teardown()
	//
	t.Setenv("SCRIPTLANG_EXTENSIONS", "txt, sl")
	k := koanf.New(".")
	if err := loadLayers(k, nil); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"txt", "sl"}, acceptedExtensions(k)); diff != "" {
		t.Errorf("extensions differ (-want +got):\n%s", diff)
	}
	if d := debounce(nil); d != 200*time.Millisecond {
		t.Errorf("expected default debounce, is %v", d)
	}
}

func TestTracefile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.cli")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "logs", "scriptlang.log")
	if err := openTracefile("file://" + path); err != nil {
		t.Fatal(err)
	}
	defer func() { scriptlang.Tracefile = nil }()
	if scriptlang.Tracefile == nil {
		t.Fatal("expected log file to be kept for closing on exit")
	}
	if err := scriptlang.Tracefile.Close(); err != nil {
		t.Errorf("closing log file: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected log file to be created: %v", err)
	}
	scriptlang.Tracefile = nil
	if err := openTracefile("stderr"); err != nil {
		t.Fatal(err)
	}
	if scriptlang.Tracefile != nil {
		t.Error("expected stderr not to be kept as log file")
	}
}

// syncBuffer is a bytes.Buffer safe for use by a watcher goroutine and
// the test.
type syncBuffer struct {
	mx sync.Mutex
	b  bytes.Buffer
}

func (sb *syncBuffer) Write(p []byte) (int, error) {
	sb.mx.Lock()
	defer sb.mx.Unlock()
	return sb.b.Write(p)
}

func (sb *syncBuffer) String() string {
	sb.mx.Lock()
	defer sb.mx.Unlock()
	return sb.b.String()
}

func waitFor(t *testing.T, sb *syncBuffer, s string) bool {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(sb.String(), s) {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

func TestWatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scriptlang.cli")
	defer teardown()
	colorize = false
	//
	path := writeScript(t, "watched.txt", "set a = 1", `print "run ", $a`)
	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	w := newScriptWatcher(path, DefaultExtensions, stdout, stderr)
	w.delay = 10 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()
	if !waitFor(t, stdout, "run 1\n") {
		cancel()
		t.Fatalf("expected first run, output is %q, errors %q", stdout.String(), stderr.String())
	}
	if err := os.WriteFile(path, []byte("set a = $a + 1\nprint \"run \", $a\n"), 0o644); err != nil {
		cancel()
		t.Fatal(err)
	}
	if !waitFor(t, stderr, "not been assigned") {
		t.Errorf("expected re-run on a clean store to fail, errors are %q", stderr.String())
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("watch did not stop on cancel")
	}
}
