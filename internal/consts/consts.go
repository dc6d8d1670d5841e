// Package consts holds the fixed numeric parameters WritePathSpice used
// as named member-initializer literals in the original implementation.
package consts

const (
	// ShortCktResistance patches a driver-to-load connection that the
	// parasitic network didn't reach, so the load is never left
	// floating.
	ShortCktResistance = 1e-4

	// ClkCycleCount is the number of clock cycles the clocked stimulus
	// waveform runs for.
	ClkCycleCount = 3

	// TimeUnitScale is the non-zero slew floor used when both the delay
	// calculator and the next stage's timing table report a zero slew,
	// matching OpenSTA's default nanosecond time unit scale.
	TimeUnitScale = 1e-9
)
