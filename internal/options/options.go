// Package options contains the program options.
package options

// Program options of the emulator.
type Program struct {
	ROMFile string

	CPUSpeed uint
	Waveform string

	NoShiftQuirks     bool
	NoLoadStoreQuirks bool

	Debug bool
	Quiet bool
}
