package config // CLI configuration file

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// Params holds key=value settings read from a parameter file.
// Keys are flag names without the leading dash.
type Params map[string]string

// ParseParams reads one key=value pair per line.
// Blank lines and lines starting with '#' are skipped.
func ParseParams(r io.Reader) (Params, error) {
	params := make(Params)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		kv := splitOption(line)
		key := strings.TrimLeft(strings.TrimSpace(kv[0]), "-")
		if key == "" {
			return nil, fmt.Errorf("line %d: missing parameter name", lineNum)
		}
		params[key] = strings.TrimSpace(kv[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return params, nil
}

// LoadParams reads a parameter file from disk.
func LoadParams(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open params file: %w", err)
	}
	defer f.Close()
	params, err := ParseParams(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return params, nil
}

// Apply sets every flag named in p that was not given on the command line.
// Command-line values always win. Unknown names are an error.
func (p Params) Apply(fs *flag.FlagSet) error {
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	for key, val := range p {
		if fs.Lookup(key) == nil {
			return fmt.Errorf("unknown parameter %q", key)
		}
		if explicit[key] {
			continue
		}
		if err := fs.Set(key, val); err != nil {
			return fmt.Errorf("parameter %s: %w", key, err)
		}
	}
	return nil
}

// splitOption splits "key=value" at the first '='. A bare key yields an empty value.
func splitOption(arg string) [2]string {
	var kv [2]string
	for i, ch := range arg {
		if ch == '=' {
			kv[0] = arg[:i]
			kv[1] = arg[i+1:]
			return kv
		}
	}
	kv[0] = arg
	kv[1] = ""
	return kv
}
