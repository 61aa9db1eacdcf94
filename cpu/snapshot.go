package cpu

// Snapshot is a read-only export of the observable machine state, taken
// for display. Reading a snapshot never perturbs the simulation.
type Snapshot struct {
	A, B, Y, Z uint8 // Primary register set.
	Pc         uint8 // Program counter.
	Flag       bool  // Condition flag.

	Display uint8           // 7-segment readout value.
	Led     [LED_COUNT]bool // Binary LED states.
	Sound   Sound           // Most recent buzzer request.
	Note    uint8           // Note selector for SOUND_NOTE.

	Halted  bool // Terminal halted state.
	Waiting bool // Suspended on KA, pending a key.
}

// Snapshot exports the observable state of the CPU.
func (cpu *Cpu) Snapshot() (snap Snapshot) {
	snap = Snapshot{
		A:       cpu.A,
		B:       cpu.B,
		Y:       cpu.Y,
		Z:       cpu.Z,
		Pc:      cpu.Pc,
		Flag:    cpu.Flag,
		Display: cpu.Display,
		Led:     cpu.Led,
		Sound:   cpu.Sound,
		Note:    cpu.Note,
		Halted:  cpu.Status == STATUS_HALTED,
		Waiting: cpu.Status == STATUS_WAITING,
	}

	return
}
