// SPDX-License-Identifier: MPL-2.0

// Package directive finds the include reference on a line of shader source.
//
// It answers the question an editor asks before offering "open included file":
// is this line an include directive, and if so, what does it reference? The
// answer is returned as a value so the caller can hand it straight to the
// resolver instead of remembering a cursor position between calls.
package directive

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

const (
	// DelimiterQuote marks a "quoted" include target.
	DelimiterQuote Delimiter = '"'
	// DelimiterAngle marks an <angle-bracket> include target.
	DelimiterAngle Delimiter = '<'

	includeKeyword = "include"
)

var (
	// ErrNoDirective is returned when the requested line is not an include directive.
	ErrNoDirective = errors.New("no include directive on line")
	// ErrLineOutOfRange is returned when the requested line does not exist in the file.
	ErrLineOutOfRange = errors.New("line out of range")
)

type (
	// Delimiter is the opening character around an include target.
	Delimiter rune

	// Reference is an include target located on a source line.
	Reference struct {
		// Target is the text between the delimiters, unmodified.
		Target string
		// Delimiter is the opening delimiter.
		Delimiter Delimiter
		// Start and End are byte offsets of Target within the line.
		Start int
		End   int
	}
)

// closing returns the delimiter that ends a target opened with d.
func (d Delimiter) closing() byte {
	if d == DelimiterAngle {
		return '>'
	}
	return '"'
}

// Locate parses line as `#include "target"` or `#include <target>`. Whitespace
// is allowed before and after the '#'. Anything after the closing delimiter is
// ignored.
func Locate(line string) (Reference, bool) {
	i := skipSpace(line, 0)
	if i >= len(line) || line[i] != '#' {
		return Reference{}, false
	}
	i = skipSpace(line, i+1)
	if !strings.HasPrefix(line[i:], includeKeyword) {
		return Reference{}, false
	}
	i = skipSpace(line, i+len(includeKeyword))
	if i >= len(line) {
		return Reference{}, false
	}

	var delim Delimiter
	switch line[i] {
	case '"':
		delim = DelimiterQuote
	case '<':
		delim = DelimiterAngle
	default:
		return Reference{}, false
	}

	start := i + 1
	end := strings.IndexByte(line[start:], delim.closing())
	if end <= 0 {
		return Reference{}, false
	}
	return Reference{
		Target:    line[start : start+end],
		Delimiter: delim,
		Start:     start,
		End:       start + end,
	}, true
}

// LocateInFile reads the 1-based line lineNo of path and locates the include
// reference on it.
func LocateInFile(fsys afero.Fs, path string, lineNo int) (Reference, error) {
	if lineNo < 1 {
		return Reference{}, fmt.Errorf("%w: %d", ErrLineOutOfRange, lineNo)
	}

	f, err := fsys.Open(path)
	if err != nil {
		return Reference{}, fmt.Errorf("open source file: %w", err)
	}
	defer func() { _ = f.Close() }() // Read-only file; close error non-critical

	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		if n != lineNo {
			continue
		}
		ref, ok := Locate(scanner.Text())
		if !ok {
			return Reference{}, fmt.Errorf("%w %d of %s", ErrNoDirective, lineNo, path)
		}
		return ref, nil
	}
	if err := scanner.Err(); err != nil {
		return Reference{}, fmt.Errorf("read source file: %w", err)
	}
	return Reference{}, fmt.Errorf("%w: %d in %s", ErrLineOutOfRange, lineNo, path)
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}
