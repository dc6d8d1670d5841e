// Package deck assembles the final SPICE deck: it drives the stager,
// stimulus synthesizer, sensitizer, parasitic emitter, harvester and
// measurement emitter in sequence and writes their output to the two
// files a pathspice invocation produces (the deck and the harvested
// subckt file; the model file is only ever `.include`d by name).
// Grounded on the top-level
// WritePathSpice::writeSpice/writeHeader/writeStageInstances/
// writeStageSubckts/writeInputStage/writeGateStage/writeSubcktInst
// methods in original_source/search/WritePathSpice.cc.
package deck

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/edp1096/pathspice/pkg/harvest"
	"github.com/edp1096/pathspice/pkg/measure"
	"github.com/edp1096/pathspice/pkg/parasitic"
	"github.com/edp1096/pathspice/pkg/sensitize"
	"github.com/edp1096/pathspice/pkg/sta"
	"github.com/edp1096/pathspice/pkg/stage"
	"github.com/edp1096/pathspice/pkg/stimulus"
	"github.com/edp1096/pathspice/pkg/util"
)

// ErrFileNotWritable is returned when an output file cannot be created.
var ErrFileNotWritable = errors.New("file not writable")

// ErrFileNotReadable is returned when the vendor subckt library file
// cannot be opened.
var ErrFileNotReadable = errors.New("file not readable")

// Logger receives recoverable-warning diagnostics.
type Logger interface {
	Warnf(format string, args ...any)
}

// stdLogger backs Logger with the standard log package, the way the
// teacher reports setup and analysis diagnostics with bare log.Printf.
type stdLogger struct{}

func (stdLogger) Warnf(format string, args ...any) {
	log.Printf("warning: "+format, args...)
}

// Config names the six collaborators and seven invocation parameters a
// deck invocation needs (spec.md §6).
type Config struct {
	SpiceFilename     string
	SubcktFilename    string
	LibSubcktFilename string
	ModelFilename     string
	PowerName         string
	GndName           string

	Network    sta.Network
	Path       sta.Path
	Library    *sta.LibertyLibrary
	Dcalc      sta.DelayCalc
	Parasitics sta.Parasitics
	Sim        sta.LogicSim

	// Log defaults to a standard-library-backed Logger when nil.
	Log Logger
}

// WritePathSpice is pathspice's single entry point: given a timing
// path and its collaborators, it writes the harvested subckt file and
// the SPICE deck file. Apart from a read error on the vendor library,
// which is returned as is, every failure is one of the fatal sentinel
// errors declared across pkg/deck, pkg/harvest and pkg/sensitize.
func WritePathSpice(cfg Config) error {
	if cfg.Log == nil {
		cfg.Log = stdLogger{}
	}

	stager := stage.New(cfg.Path)

	harvested, err := writeSubckts(cfg, stager)
	if err != nil {
		return err
	}

	railVoltages := resolveRails(cfg)

	out, err := os.Create(cfg.SpiceFilename)
	if err != nil {
		return errors.Wrapf(ErrFileNotWritable, "%s", cfg.SpiceFilename)
	}
	defer out.Close()

	stim := stimulus.New(cfg.Network, cfg.Dcalc, cfg.Library, stimulus.Rails{
		PowerVoltage: railVoltages.PowerVoltage,
		GndVoltage:   railVoltages.GndVoltage,
	}, cfg.Path, stager)
	sens := sensitize.New(cfg.Network, cfg.Sim, cfg.Dcalc, stim, sensitize.Rails{
		PowerName:    cfg.PowerName,
		GndName:      cfg.GndName,
		PowerVoltage: railVoltages.PowerVoltage,
		GndVoltage:   railVoltages.GndVoltage,
	}, cfg.Log)
	pe := parasitic.New(cfg.Network, cfg.Parasitics)
	me := measure.New(cfg.Network, cfg.Library, railVoltages.PowerVoltage)

	var b strings.Builder
	b.WriteString(writeHeader(cfg, stim))
	b.WriteString(writeStageInstances(cfg, stager))
	b.WriteString("********************\n")
	b.WriteString("* Measure statements\n")
	b.WriteString("********************\n\n")
	b.WriteString(me.WriteAll(stager))
	b.WriteString("\n")
	b.WriteString("**************\n")
	b.WriteString("* Input source\n")
	b.WriteString("**************\n\n")
	b.WriteString(stim.WriteInputSource())
	b.WriteString("\n")
	b.WriteString("***************\n")
	b.WriteString("* Stage subckts\n")
	b.WriteString("***************\n\n")

	stagesText, err := writeStageSubckts(cfg, stager, sens, pe, harvested)
	if err != nil {
		return err
	}
	b.WriteString(stagesText)
	b.WriteString(".end\n")

	if _, err := out.WriteString(b.String()); err != nil {
		return errors.Wrapf(ErrFileNotWritable, "%s", cfg.SpiceFilename)
	}
	return nil
}

type rails struct {
	PowerVoltage float64
	GndVoltage   float64
}

// resolveRails finds the power and ground rail voltages: a named
// supply voltage from the default library, falling back for power to
// the library's default operating conditions, and for ground to 0.0.
func resolveRails(cfg Config) rails {
	r := rails{}
	if v, ok := cfg.Library.SupplyVoltage(cfg.PowerName); ok {
		r.PowerVoltage = v
	} else if cfg.Library.DefaultOperatingConditions != nil {
		r.PowerVoltage = cfg.Library.DefaultOperatingConditions.Voltage
	}
	if v, ok := cfg.Library.SupplyVoltage(cfg.GndName); ok {
		r.GndVoltage = v
	}
	return r
}

func writeSubckts(cfg Config, stager *stage.Stager) (*harvest.Harvest, error) {
	libFile, err := os.Open(cfg.LibSubcktFilename)
	if err != nil {
		return nil, errors.Wrapf(ErrFileNotReadable, "%s", cfg.LibSubcktFilename)
	}
	defer libFile.Close()

	names := harvest.CellNames(cfg.Network, cfg.Path, stager)
	harvester := harvest.New(cfg.Network, cfg.PowerName, cfg.GndName)
	result, err := harvester.Run(libFile, names)
	if err != nil {
		return nil, err
	}

	out, err := os.Create(cfg.SubcktFilename)
	if err != nil {
		return nil, errors.Wrapf(ErrFileNotWritable, "%s", cfg.SubcktFilename)
	}
	defer out.Close()

	if _, err := out.WriteString(result.Subckts); err != nil {
		return nil, errors.Wrapf(ErrFileNotWritable, "%s", cfg.SubcktFilename)
	}
	return result, nil
}

func writeHeader(cfg Config, stim *stimulus.Synthesizer) string {
	start := cfg.Path.At(0)
	end := sta.End(cfg.Path)

	var temp float64
	if cfg.Library.DefaultOperatingConditions != nil {
		temp = cfg.Library.DefaultOperatingConditions.Temperature
	}

	maxTime := stim.MaxTime()
	timeStep := maxTime / 1e3

	var b strings.Builder
	fmt.Fprintf(&b, "* Path from %s %s to %s %s\n",
		cfg.Network.PathName(start.Pin), start.Transition.String(),
		cfg.Network.PathName(end.Pin), end.Transition.String())
	fmt.Fprintf(&b, ".temp %s\n", util.FormatTemp(temp))
	fmt.Fprintf(&b, ".include \"%s\"\n", cfg.ModelFilename)
	fmt.Fprintf(&b, ".include \"%s\"\n", cfg.SubcktFilename)
	fmt.Fprintf(&b, ".tran %s %s\n\n", util.FormatExp(timeStep), util.FormatExp(maxTime))
	return b.String()
}

func writeStageInstances(cfg Config, stager *stage.Stager) string {
	var b strings.Builder
	b.WriteString("*****************\n")
	b.WriteString("* Stage instances\n")
	b.WriteString("*****************\n\n")

	for s := stager.First(); s <= stager.Last(); s++ {
		name := stager.Name(s)
		drvrName := cfg.Network.PathName(stager.DriverPin(s))
		loadName := cfg.Network.PathName(stager.LoadPin(s))

		if s == stager.First() {
			fmt.Fprintf(&b, "x%s %s %s %s\n", name, drvrName, loadName, name)
			continue
		}
		inputPin, _ := stager.GateInputPin(s)
		inputName := cfg.Network.PathName(inputPin)
		fmt.Fprintf(&b, "x%s %s %s %s %s\n", name, inputName, drvrName, loadName, name)
	}
	return b.String()
}

func writeStageSubckts(cfg Config, stager *stage.Stager, sens *sensitize.Sensitizer, pe *parasitic.Emitter, harvested *harvest.Harvest) (string, error) {
	var b strings.Builder
	for s := stager.First(); s <= stager.Last(); s++ {
		if s == stager.First() {
			b.WriteString(writeInputStage(cfg, stager, pe, s))
			continue
		}
		text, err := writeGateStage(cfg, stager, sens, pe, harvested, s)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func writeInputStage(cfg Config, stager *stage.Stager, pe *parasitic.Emitter, s stage.Index) string {
	drvrPin := stager.DriverPin(s)
	loadPin := stager.LoadPin(s)

	var b strings.Builder
	fmt.Fprintf(&b, ".subckt %s %s %s\n", stager.Name(s), cfg.Network.PathName(drvrPin), cfg.Network.PathName(loadPin))
	b.WriteString(pe.Write(drvrPin, stager.DriverPath(s).ParasiticAP))
	b.WriteString(".ends\n\n")
	return b.String()
}

func writeGateStage(cfg Config, stager *stage.Stager, sens *sensitize.Sensitizer, pe *parasitic.Emitter, harvested *harvest.Harvest, s stage.Index) (string, error) {
	inputPin, _ := stager.GateInputPin(s)
	drvrPin := stager.DriverPin(s)
	loadPin := stager.LoadPin(s)

	inputPort := cfg.Network.LibertyPort(inputPin)
	drvrPort := cfg.Network.LibertyPort(drvrPin)
	inst := cfg.Network.Instance(inputPin)
	instName := cfg.Network.PathName(inst)
	cell := cfg.Network.LibertyCell(inst)
	portNames := harvested.PortNamesOf[cell.Name]

	var b strings.Builder
	fmt.Fprintf(&b, ".subckt %s %s %s %s\n", stager.Name(s),
		cfg.Network.PathName(inputPin), cfg.Network.PathName(drvrPin), cfg.Network.PathName(loadPin))
	fmt.Fprintf(&b, "* Gate %s %s -> %s\n", instName, inputPort.Name, drvrPort.Name)
	b.WriteString(writeSubcktInst(cfg, cell, portNames, inputPin))

	voltIndex := 1
	values, clk, apIndex := sens.GateValues(stager, s)
	sources, err := sens.WritePortSources(inputPin, inputPort.Name, drvrPort.Name, &voltIndex, values, clk, apIndex, portNames)
	if err != nil {
		return "", err
	}
	b.WriteString(sources)
	b.WriteString("\n")

	for _, pin := range cfg.Network.ConnectedPins(drvrPin) {
		if pin == drvrPin || pin == loadPin {
			continue
		}
		if !cfg.Network.Direction(pin).IsAnyInput() {
			continue
		}
		if cfg.Network.IsHierarchical(pin) || cfg.Network.IsTopLevelPort(pin) {
			continue
		}

		sideInst := cfg.Network.Instance(pin)
		sideCell := cfg.Network.LibertyCell(sideInst)
		sidePortNames := harvested.PortNamesOf[sideCell.Name]
		sidePort := cfg.Network.LibertyPort(pin)

		fmt.Fprintf(&b, "* Side load %s\n", cfg.Network.PathName(pin))
		b.WriteString(writeSubcktInst(cfg, sideCell, sidePortNames, pin))
		sideSources, err := sens.WritePortSources(pin, sidePort.Name, drvrPort.Name, &voltIndex, sensitize.PortValues{}, nil, 0, sidePortNames)
		if err != nil {
			return "", err
		}
		b.WriteString(sideSources)
		b.WriteString("\n")
	}

	b.WriteString(pe.Write(drvrPin, stager.DriverPath(s).ParasiticAP))
	b.WriteString(".ends\n\n")
	return b.String(), nil
}

// writeSubcktInst renders one "x<inst> <conn>... <cellName>" instance
// call, connecting each harvested subckt port to the matching network
// pin, pg_pin-derived internal node, or rail-derived internal node.
func writeSubcktInst(cfg Config, cell *sta.LibertyCell, portNames []string, anyPin sta.Pin) string {
	network := cfg.Network
	inst := network.Instance(anyPin)
	instName := network.PathName(inst)

	var b strings.Builder
	fmt.Fprintf(&b, "x%s", instName)
	for _, portName := range portNames {
		if pin, ok := network.FindPin(inst, portName); ok {
			fmt.Fprintf(&b, " %s", network.PathName(pin))
			continue
		}
		if cell.FindPgPort(portName) != nil || portName == cfg.PowerName || portName == cfg.GndName {
			fmt.Fprintf(&b, " %s/%s", instName, portName)
		}
	}
	fmt.Fprintf(&b, " %s\n", cell.Name)
	return b.String()
}
