// This file is part of Videochain.
//
// Videochain is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Videochain is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Videochain.  If not, see <https://www.gnu.org/licenses/>.

package preset

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is a set of key/value pairs read from a preset file and the files it
// includes.
type Config struct {
	path   string
	values map[string]any

	// included scopes in priority order. included scopes are read-only
	includes []*Config
}

// maximum depth of nested includes.
const maxIncludeDepth = 16

// ReadConfig reads the file and any files it includes.
func ReadConfig(path string) (*Config, error) {
	return readConfig(path, nil)
}

func readConfig(path string, stack []string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	for _, s := range stack {
		if s == abs {
			return nil, fmt.Errorf("include cycle: %s", strings.Join(append(stack, abs), " -> "))
		}
	}
	if len(stack) >= maxIncludeDepth {
		return nil, fmt.Errorf("includes nested too deeply: %s", path)
	}
	stack = append(stack, abs)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		path:   path,
		values: make(map[string]any),
	}

	incs, err := scanIncludes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for _, inc := range incs {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(filepath.Dir(path), inc)
		}
		sub, err := readConfig(inc, stack)
		if err != nil {
			return nil, err
		}
		cfg.includes = append(cfg.includes, sub)
	}

	err = toml.Unmarshal(data, &cfg.values)
	if err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%s:%d:%d: %v", path, row, col, derr)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// scanIncludes returns the paths of every #include line.
func scanIncludes(data []byte) ([]string, error) {
	var incs []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; scanner.Scan(); n++ {
		l := strings.TrimSpace(scanner.Text())
		rest, ok := strings.CutPrefix(l, "#include")
		if !ok {
			continue
		}
		inc, err := strconv.Unquote(strings.TrimSpace(rest))
		if err != nil || inc == "" {
			return nil, fmt.Errorf("line %d: malformed include: %s", n, l)
		}
		incs = append(incs, inc)
	}

	return incs, scanner.Err()
}

// Path returns the path of the file the Config was read from.
func (cfg *Config) Path() string {
	return cfg.path
}

// lookup returns the value for the key and the Config it was found in.
func (cfg *Config) lookup(key string) (any, *Config) {
	if v, ok := cfg.values[key]; ok {
		return v, cfg
	}
	for _, inc := range cfg.includes {
		if v, c := inc.lookup(key); c != nil {
			return v, c
		}
	}
	return nil, nil
}

// Has returns true if the key has a value.
func (cfg *Config) Has(key string) bool {
	_, c := cfg.lookup(key)
	return c != nil
}

// String returns the value for key. Numbers and booleans are converted to
// strings. The second return value is false if the key is absent.
func (cfg *Config) String(key string) (string, bool, error) {
	v, c := cfg.lookup(key)
	if c == nil {
		return "", false, nil
	}
	switch v := v.(type) {
	case string:
		return v, true, nil
	case int64, float64, bool:
		return fmt.Sprintf("%v", v), true, nil
	}
	return "", true, fmt.Errorf("%s: %s is not a string", c.path, key)
}

// PathValue returns the value for key as a path. Relative paths are made relative
// to the file that the value was found in.
func (cfg *Config) PathValue(key string) (string, bool, error) {
	v, c := cfg.lookup(key)
	if c == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", true, fmt.Errorf("%s: %s is not a path", c.path, key)
	}
	if !filepath.IsAbs(s) {
		s = filepath.Join(filepath.Dir(c.path), s)
	}
	return s, true, nil
}

// Int returns the value for key as an int. Strings are parsed.
func (cfg *Config) Int(key string) (int, bool, error) {
	v, c := cfg.lookup(key)
	if c == nil {
		return 0, false, nil
	}
	switch v := v.(type) {
	case int64:
		return int(v), true, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, true, fmt.Errorf("%s: %s: %w", c.path, key, err)
		}
		return n, true, nil
	}
	return 0, true, fmt.Errorf("%s: %s is not an integer", c.path, key)
}

// Float returns the value for key as a float. Integers are converted and
// strings are parsed.
func (cfg *Config) Float(key string) (float64, bool, error) {
	v, c := cfg.lookup(key)
	if c == nil {
		return 0, false, nil
	}
	switch v := v.(type) {
	case float64:
		return v, true, nil
	case int64:
		return float64(v), true, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, true, fmt.Errorf("%s: %s: %w", c.path, key, err)
		}
		return f, true, nil
	}
	return 0, true, fmt.Errorf("%s: %s is not a number", c.path, key)
}

// Bool returns the value for key as a bool. The strings "true" and "false"
// are accepted.
func (cfg *Config) Bool(key string) (bool, bool, error) {
	v, c := cfg.lookup(key)
	if c == nil {
		return false, false, nil
	}
	switch v := v.(type) {
	case bool:
		return v, true, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, true, fmt.Errorf("%s: %s: %w", c.path, key, err)
		}
		return b, true, nil
	}
	return false, true, fmt.Errorf("%s: %s is not a boolean", c.path, key)
}

// List returns the value for key split on semicolons. Empty elements are
// removed.
func (cfg *Config) List(key string) ([]string, error) {
	s, ok, err := cfg.String(key)
	if err != nil || !ok {
		return nil, err
	}
	var l []string
	for e := range strings.SplitSeq(s, ";") {
		if e = strings.TrimSpace(e); e != "" {
			l = append(l, e)
		}
	}
	return l, nil
}
