package auxmap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	commentPrefix = "#"
	fieldSep      = "\t"
)

// ErrInvalidUTF8 is returned when a table contains bytes that are not UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Stats summarizes how the rows of a table were handled.
type Stats struct {
	Lines      int
	Blank      int
	Comments   int
	Malformed  int
	Duplicates int
	Kept       int
}

// Map is a first-wins mapping from a character to its auxiliary code.
// It is safe for concurrent reads once loaded.
type Map struct {
	codes     map[string]string
	normalize func(string) string
	stats     Stats
}

// Option customizes table loading.
type Option func(*Map)

// WithNormalization applies a Unicode normalization form to keys at load
// time and to every lookup.
func WithNormalization(form norm.Form) Option {
	return func(m *Map) {
		m.normalize = form.String
	}
}

// New builds a map from already-parsed pairs using the same first-wins rule
// as Load. Pairs with an empty key or code are dropped.
func New(pairs [][2]string, opts ...Option) *Map {
	m := newMap(opts)
	for _, pair := range pairs {
		m.stats.Lines++
		m.insert(pair[0], pair[1])
	}
	return m
}

// Load reads a table from r. A leading UTF-8 byte order mark is discarded.
// Input that is not valid UTF-8 is rejected rather than repaired.
func Load(r io.Reader, opts ...Option) (*Map, error) {
	if r == nil {
		return nil, errors.New("auxmap: nil reader")
	}
	m := newMap(opts)

	reader := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, err := reader.ReadString('\n')
		if line != "" {
			if !utf8.ValidString(line) {
				return nil, fmt.Errorf("read table: line %d: %w", lineNo, ErrInvalidUTF8)
			}
			if lineNo == 1 {
				stripped, _, terr := transform.String(unicode.UTF8BOM.NewDecoder(), line)
				if terr != nil {
					return nil, fmt.Errorf("read table: %w", terr)
				}
				line = stripped
			}
			m.stats.Lines++
			m.parseRow(line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read table: %w", err)
		}
	}
	return m, nil
}

// LoadFile opens path and loads it as a table.
func LoadFile(path string, opts ...Option) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	m, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func newMap(opts []Option) *Map {
	m := &Map{codes: make(map[string]string)}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

func (m *Map) parseRow(line string) {
	line = strings.TrimRight(line, "\n\r")
	switch {
	case line == "":
		m.stats.Blank++
		return
	case strings.HasPrefix(line, commentPrefix):
		m.stats.Comments++
		return
	}
	fields := strings.Split(line, fieldSep)
	if len(fields) < 2 {
		m.stats.Malformed++
		return
	}
	m.insert(fields[0], fields[1])
}

func (m *Map) insert(key, code string) {
	if m.normalize != nil {
		key = m.normalize(key)
	}
	if key == "" || code == "" {
		m.stats.Malformed++
		return
	}
	if _, exists := m.codes[key]; exists {
		m.stats.Duplicates++
		return
	}
	m.codes[key] = code
	m.stats.Kept++
}

// Lookup returns the auxiliary code recorded for char.
func (m *Map) Lookup(char string) (string, bool) {
	if m == nil {
		return "", false
	}
	if m.normalize != nil {
		char = m.normalize(char)
	}
	code, ok := m.codes[char]
	return code, ok
}

// Len reports the number of characters with a code.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.codes)
}

// Stats returns the row counters gathered while loading.
func (m *Map) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	return m.stats
}
