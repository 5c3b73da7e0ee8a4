package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/appender"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/scriptlang"
	"github.com/spf13/pflag"
)

// envPrefix starts environment variables holding configuration values,
// e.g. SCRIPTLANG_WATCH_DEBOUNCE for key 'watch.debounce'.
const envPrefix = "SCRIPTLANG_"

var configDefaults = map[string]interface{}{
	"logfile":        "stderr",
	"debug":          false,
	"interactive":    false,
	"extensions":     DefaultExtensions,
	"watch.debounce": "200ms",
}

// traceKeys are raised to debug level by the --debug flag.
var traceKeys = []string{
	"scriptlang.variables",
	"scriptlang.grammar",
	"scriptlang.core",
	"scriptlang.evaluator",
	"scriptlang.cli",
}

// loadConfig is a callback function used by cobra's initialization mechanism.
// Unfortunately we're not allowed a return value.
func loadConfig() {
	k := koanf.New(".") // '.' is hierarchy delimiter
	// We locate scriptlang configuration with an application-key of 'SCRIPTLANG' and
	// use NestedText-format (nt) for config-files
	konf := koanfadapter.New(k, "SCRIPTLANG", []string{"nt"})
	konf.InitDefaults()
	if err := loadLayers(k, rootCmd.PersistentFlags()); err != nil {
		tracing.Errorf(err.Error())
		scriptlang.Exit(exitScriptError)
	}
	redirectTracing(konf)
	if err := configureTracing(konf); err != nil {
		tracing.Errorf(err.Error())
		scriptlang.Exit(exitScriptError)
	}
	if k.Bool("debug") {
		setTraceLevel(tracing.LevelDebug)
	}
	scriptlang.Configuration = k // push the configuration to app-global scope
}

// loadLayers merges defaults, environment and command-line flags into k.
// Later layers override earlier ones.
func loadLayers(k *koanf.Koanf, flags *pflag.FlagSet) error {
	if err := k.Load(confmap.Provider(configDefaults, "."), nil); err != nil {
		return err
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return err
	}
	if flags != nil {
		return k.Load(posflag.Provider(flags, ".", k), nil)
	}
	return nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
}

// acceptedExtensions returns the script file extensions of the
// configuration. Values from the environment come as a single
// comma-separated string.
func acceptedExtensions(k *koanf.Koanf) []string {
	if k == nil {
		return DefaultExtensions
	}
	if exts := k.Strings("extensions"); len(exts) > 0 {
		return exts
	}
	var exts []string
	for _, e := range strings.Split(k.String("extensions"), ",") {
		if e = strings.TrimSpace(e); e != "" {
			exts = append(exts, e)
		}
	}
	if len(exts) == 0 {
		return DefaultExtensions
	}
	return exts
}

// debounce returns the configured delay between a file event and a re-run.
func debounce(k *koanf.Koanf) time.Duration {
	if k == nil {
		return 200 * time.Millisecond
	}
	d := k.Duration("watch.debounce")
	if d <= 0 {
		return 200 * time.Millisecond
	}
	return d
}

func redirectTracing(konf *koanfadapter.KConf) {
	if logname := konf.GetString("logfile"); logname != "" && logname != "stderr" {
		if strings.Contains(logname, ":/") {
			konf.Set("tracing.destination", logname)
		} else {
			konf.Set("tracing.destination", "file://"+logname)
		}
	}
}

func configureTracing(konf *koanfadapter.KConf) error {
	if a := konf.GetString("tracing.adapter"); a != "" && a != "go" {
		tracing.Errorf("tracing adapter type '%s' currently not supported", a)
	}
	konf.Set("tracing.adapter", "go") // use Go builtin logging facilities
	paths := locateLogFile()
	dest := konf.GetString("tracing.destination")
	if dest != "" && !strings.Contains(dest, ":") && paths.LogDir() != "" {
		dest = "file://" + paths.LogDir() + "/" + dest
	}
	konf.Set("tracing.destination", "stderr") // file destinations are opened by us
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(konf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	if dest != "" {
		if err := openTracefile(dest); err != nil {
			return err
		}
	}
	tracing.Infof("scriptlang configured")
	return nil
}

// openTracefile redirects all tracers to dest. A file destination is kept
// as scriptlang.Tracefile, to be closed on exit.
func openTracefile(dest string) error {
	w, err := appender.Destination(dest)
	if err != nil {
		return fmt.Errorf("cannot open log destination %s: %w", dest, err)
	}
	if w != os.Stdout && w != os.Stderr {
		scriptlang.Tracefile = w
	}
	trace2go.Root().SetOutput(w)
	for _, key := range traceKeys {
		tracing.Select(key).SetOutput(w)
	}
	return nil
}

func setTraceLevel(level tracing.TraceLevel) {
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

func locateLogFile() AppPaths {
	paths, err := DefaultAppPaths("ScriptLang")
	if err != nil {
		tracing.Errorf("cannot configure paths: %v", err)
	}
	return paths
}
