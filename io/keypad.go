// Package io provides front-panel device models for the GMC-4 emulator:
// the hexadecimal keypad, the buzzer sink, and the hex-text program file
// codec.
package io

// Keypad buffers key presses from the front panel in arrival order.
// Key values are masked to 4 bits. Presses arrive from the host event
// loop; the emulator drains them one at a time when the CPU asks for
// input.
type Keypad struct {
	keys []uint8
}

// Press records a key press.
func (kp *Keypad) Press(value uint8) {
	kp.keys = append(kp.keys, value&0xf)
}

// Poll removes and returns the oldest buffered key press, if any.
func (kp *Keypad) Poll() (value uint8, ok bool) {
	if len(kp.keys) == 0 {
		return
	}

	value = kp.keys[0]
	kp.keys = kp.keys[1:]
	ok = true

	return
}

// Pending returns the number of buffered key presses.
func (kp *Keypad) Pending() int {
	return len(kp.keys)
}

// Reset discards all buffered key presses.
func (kp *Keypad) Reset() {
	kp.keys = nil
}
