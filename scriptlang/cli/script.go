package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrScriptFile is wrapped by every error of ReadScript.
var ErrScriptFile = errors.New("file reading error")

// DefaultExtensions are the file extensions accepted for scripts if
// nothing else is configured.
var DefaultExtensions = []string{"txt"}

// maxLineLength limits the length of a single script line.
const maxLineLength = 1024 * 1024

// ReadScript reads all lines of a script file. The file name has to
// carry one of the given extensions, compared case-sensitive and without
// the dot.
func ReadScript(path string, extensions []string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: file to read not specified", ErrScriptFile)
	}
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: file '%s' not found or cannot read the file", ErrScriptFile, path)
	}
	if err := checkExtension(path, extensions); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: file '%s' not found or cannot read the file: %w", ErrScriptFile, path, err)
	}
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: error during reading the '%s' file: %w", ErrScriptFile, path, err)
	}
	tracer().Debugf("read %d lines from %s", len(lines), path)
	return lines, nil
}

func checkExtension(path string, extensions []string) error {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, e := range extensions {
		if ext == e {
			return nil
		}
	}
	return fmt.Errorf("%w: the input file extension is not acceptable, acceptable extensions: %s",
		ErrScriptFile, strings.Join(extensions, " "))
}
