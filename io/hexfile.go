package io

import (
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/gmc4/mem"
)

// ReadProgram reads a hex-text program: a stream of hexadecimal digits,
// case-insensitive, with whitespace and any other character ignored.
func ReadProgram(r io.Reader) (values []uint8, err error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return
	}

	values = mem.Nibbles(string(text))

	return
}

// WriteProgram writes the memory range [start,end] as hex text, grouped
// in runs of 8 digits with a line break every 32, matching the format
// ReadProgram accepts.
func WriteProgram(w io.Writer, m *mem.Memory, start, end int) (err error) {
	var sb strings.Builder

	count := 0
	for addr := start; addr <= end && addr < mem.Size; addr++ {
		fmt.Fprintf(&sb, "%X", m.Get(addr))
		count++

		switch {
		case count%32 == 0:
			sb.WriteByte('\n')
		case count%8 == 0:
			sb.WriteByte(' ')
		}
	}
	if count%32 != 0 {
		sb.WriteByte('\n')
	}

	_, err = io.WriteString(w, sb.String())

	return
}
