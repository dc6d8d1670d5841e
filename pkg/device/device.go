// Package device renders the individual SPICE element cards pathspice
// emits: resistors and capacitors for parasitic networks, and DC/PWL
// voltage sources for stimulus and sensitization. This is the teacher's
// own device package with its role inverted — instead of stamping a
// device's contribution into a circuit matrix for an internal solver,
// each device renders itself as the literal text card an external SPICE
// simulator will read, since pathspice never assembles or solves a
// matrix of its own (spec.md §1 Non-goals).
package device

// Card is anything that can render itself as one or more SPICE deck
// lines, terminated with a trailing newline.
type Card interface {
	Spice() string
}

// BaseDevice holds the name and connecting node names every element
// card shares.
type BaseDevice struct {
	Name      string
	NodeNames []string
}
