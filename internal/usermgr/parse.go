package usermgr

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hnrobert/lusu/internal/hostfs"
)

type rawLine[T any] struct {
	raw   string
	entry *T
}

type parsedFile[T any] struct {
	lines []rawLine[T]
}

func (pf *parsedFile[T]) entries() []*T {
	out := make([]*T, 0, len(pf.lines))
	for i := range pf.lines {
		if pf.lines[i].entry != nil {
			out = append(out, pf.lines[i].entry)
		}
	}
	return out
}

// loadColonFile reads path and hands every non-comment line, split on ':',
// to parse. A nil entry from parse keeps the line raw.
func loadColonFile[T any](path string, parse func(parts []string) *T) (parsedFile[T], error) {
	var pf parsedFile[T]
	b, err := hostfs.ReadFile(path)
	if err != nil {
		return pf, err
	}
	lines, err := readLines(bytes.NewReader(b))
	if err != nil {
		return pf, err
	}
	for _, line := range lines {
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") {
			pf.lines = append(pf.lines, rawLine[T]{raw: line})
			continue
		}
		if e := parse(parseColonLine(line)); e != nil {
			pf.lines = append(pf.lines, rawLine[T]{entry: e})
			continue
		}
		pf.lines = append(pf.lines, rawLine[T]{raw: line})
	}
	return pf, nil
}

func parseColonLine(line string) []string {
	// Keep trailing empty fields.
	return strings.Split(line, ":")
}

func readLines(r io.Reader) ([]string, error) {
	s := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	s.Buffer(buf, 1024*1024)
	var lines []string
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func atou32(field, ctx string) (uint32, error) {
	n, err := strconv.ParseUint(field, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q in %s: %w", field, ctx, err)
	}
	return uint32(n), nil
}
