package dictmerge

import (
	"strings"
)

const (
	fieldSep      = "\t"
	codeSep       = ";"
	commentPrefix = "#"
	docSeparator  = "---"
)

// Kind classifies a dictionary line.
type Kind int

const (
	KindOther Kind = iota
	KindBlank
	KindComment
	KindSeparator
	KindEntry
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindComment:
		return "comment"
	case KindSeparator:
		return "separator"
	case KindEntry:
		return "entry"
	default:
		return "other"
	}
}

// Structural reports whether lines of this kind carry no entry data.
func (k Kind) Structural() bool {
	return k == KindBlank || k == KindComment || k == KindSeparator
}

// Lookup resolves the auxiliary code for a character.
type Lookup interface {
	Lookup(char string) (string, bool)
}

// Result is the outcome of merging one file's lines.
type Result struct {
	Lines []string
	// Changed counts lines that gained a code.
	Changed int
	// Entries counts lines with at least three fields.
	Entries int
	// AlreadyCoded counts entries skipped because the pronunciation
	// already holds a ';' suffix.
	AlreadyCoded int
	// Unmapped counts entries whose character has no code.
	Unmapped int
}

// Classify returns the kind of a single line, terminator included.
func Classify(line string) Kind {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return KindBlank
	case strings.HasPrefix(line, commentPrefix):
		return KindComment
	case trimmed == docSeparator:
		return KindSeparator
	}
	if strings.Count(line, fieldSep) >= 2 {
		return KindEntry
	}
	return KindOther
}

// Merge rewrites every entry line of lines whose character has a code.
// The input slice is not modified.
func Merge(lines []string, codes Lookup) Result {
	res := Result{Lines: make([]string, len(lines))}
	for i, line := range lines {
		res.Lines[i] = line
		if Classify(line) != KindEntry {
			continue
		}
		res.Entries++

		out, outcome := mergeEntry(line, codes)
		switch outcome {
		case entryChanged:
			res.Lines[i] = out
			res.Changed++
		case entryCoded:
			res.AlreadyCoded++
		case entryUnmapped:
			res.Unmapped++
		}
	}
	return res
}

// MergeLine applies the merge rule to a single line and reports whether it
// changed.
func MergeLine(line string, codes Lookup) (string, bool) {
	if Classify(line) != KindEntry {
		return line, false
	}
	out, outcome := mergeEntry(line, codes)
	return out, outcome == entryChanged
}

type entryOutcome int

const (
	entryUnmapped entryOutcome = iota
	entryCoded
	entryChanged
)

func mergeEntry(line string, codes Lookup) (string, entryOutcome) {
	fields := strings.SplitN(line, fieldSep, 3)
	char, pron, rest := fields[0], fields[1], fields[2]

	var code string
	var ok bool
	if codes != nil {
		code, ok = codes.Lookup(char)
	}
	if !ok || code == "" {
		return line, entryUnmapped
	}
	if strings.Contains(pron, codeSep) {
		return line, entryCoded
	}

	return char + fieldSep + pron + codeSep + code + fieldSep + rest, entryChanged
}

// SplitLines splits text into lines, keeping each terminator. "\n", "\r\n"
// and a lone "\r" all end a line. A final line without a terminator is kept
// as is; empty text yields no lines.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		default:
			continue
		}
		lines = append(lines, text[start:i+1])
		start = i + 1
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// Join concatenates lines produced by SplitLines or Merge.
func Join(lines []string) string {
	return strings.Join(lines, "")
}
