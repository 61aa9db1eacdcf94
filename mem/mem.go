// Package mem implements the nibble-addressed program memory of the GMC-4.
//
// Memory is an array of 128 independent 4-bit cells. Addresses 0x00-0x4F
// conventionally hold program text and 0x50-0x5F is the data area used by
// the indexed memory instructions; the memory itself does not distinguish
// the two.
package mem

const (
	Size     = 128  // Number of 4-bit cells.
	DataBase = 0x50 // Conventional base address of the BCD data area.
)

// Memory is the nibble store. Every cell holds a value in [0,15].
type Memory struct {
	Cell [Size]uint8
}

// Get returns the nibble at addr, or 0 for any address outside the
// memory. It never fails.
func (m *Memory) Get(addr int) (value uint8) {
	if addr >= 0 && addr < Size {
		value = m.Cell[addr]
	}
	return
}

// Set stores value at addr, masked to 4 bits. Addresses outside the
// memory are ignored.
func (m *Memory) Set(addr int, value uint8) {
	if addr >= 0 && addr < Size {
		m.Cell[addr] = value & 0xf
	}
}

// Fill sets every cell to value, masked to 4 bits.
func (m *Memory) Fill(value uint8) {
	for n := range m.Cell {
		m.Cell[n] = value & 0xf
	}
}

// Load writes a sequence of nibbles starting at start. Values that would
// land beyond the end of memory are dropped, not wrapped.
func (m *Memory) Load(values []uint8, start int) {
	for n, value := range values {
		m.Set(start+n, value)
	}
}

// LoadText decodes a string of hexadecimal digits into nibbles and loads
// them starting at start. Characters that are not hex digits, including
// whitespace, are skipped.
func (m *Memory) LoadText(text string, start int) {
	m.Load(Nibbles(text), start)
}

// Nibbles decodes a hex-digit string into nibble values, skipping any
// character that is not a hexadecimal digit.
func Nibbles(text string) (values []uint8) {
	for _, c := range text {
		switch {
		case c >= '0' && c <= '9':
			values = append(values, uint8(c-'0'))
		case c >= 'a' && c <= 'f':
			values = append(values, uint8(c-'a'+10))
		case c >= 'A' && c <= 'F':
			values = append(values, uint8(c-'A'+10))
		}
	}
	return
}
