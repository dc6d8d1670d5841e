// Package harvest copies the .subckt definitions a path's gates need
// out of a vendor SPICE library file, and records each cell's subckt
// port order as declared on its ".subckt" line — the order instance
// cards must list connections in. Grounded on writeSubckts,
// findPathCellnames and recordSpicePortNames in
// original_source/search/WritePathSpice.cc, and on the line-scanning
// style of pkg/netlist/parser.go in the teacher pack.
package harvest

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/edp1096/pathspice/pkg/sta"
	"github.com/edp1096/pathspice/pkg/stage"
)

// ErrSubcktEndsMissing is returned when a harvested .subckt block never
// reaches a closing .ends line before the vendor file runs out.
var ErrSubcktEndsMissing = errors.New("subckt missing .ends")

// ErrMissingSubckt is returned when a cell the path needs has no
// .subckt definition anywhere in the vendor library file.
var ErrMissingSubckt = errors.New("subckt not found in library file")

// ErrSubcktPortUnmapped is returned when a subckt's declared port names
// a symbol that is neither a liberty port, a pg_pin, nor a rail name.
var ErrSubcktPortUnmapped = errors.New("subckt port has no corresponding liberty port")

// Harvest is the result of scanning the vendor library: the copied
// text of every needed .subckt block, and each cell's subckt port
// order.
type Harvest struct {
	Subckts     string
	PortNamesOf map[string][]string
}

// CellNames collects the liberty cell names a path's gate instances and
// their side loads reference.
func CellNames(network sta.Network, path sta.Path, stager *stage.Stager) map[string]bool {
	names := map[string]bool{}
	for s := stager.First(); s <= stager.Last(); s++ {
		arc := stager.GateArc(s)
		if arc == nil {
			continue
		}
		if arc.Cell != nil {
			names[arc.Cell.Name] = true
		}

		drvrPin := stager.DriverPin(s)
		for _, pin := range network.ConnectedPins(drvrPin) {
			if port := network.LibertyPort(pin); port != nil && port.Cell != nil {
				names[port.Cell.Name] = true
			}
		}
	}
	return names
}

// Harvester copies .subckt blocks by cell name out of a vendor SPICE
// library reader.
type Harvester struct {
	network    sta.Network
	powerName  string
	gndName    string
}

func New(network sta.Network, powerName, gndName string) *Harvester {
	return &Harvester{network: network, powerName: powerName, gndName: gndName}
}

// Run scans src line by line, copying the .subckt...​.ends block of
// every cell named in want into the returned Harvest's Subckts, and
// recording the subckt port order of every .subckt header it passes
// whose cell the network knows, copied or not. It reports ErrSubcktEndsMissing for a block never
// closed, and ErrMissingSubckt for any wanted cell the file never
// declares.
func (h *Harvester) Run(src io.Reader, want map[string]bool) (*Harvest, error) {
	remaining := make(map[string]bool, len(want))
	for name := range want {
		remaining[name] = true
	}

	var out strings.Builder
	portNamesOf := map[string][]string{}

	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) >= 2 && strings.EqualFold(tokens[0], ".subckt") {
			cellName := tokens[1]
			if remaining[cellName] {
				out.WriteString(line)
				out.WriteString("\n")
				foundEnds := false
				for scanner.Scan() {
					blockLine := scanner.Text()
					out.WriteString(blockLine)
					out.WriteString("\n")
					if strings.HasPrefix(blockLine, ".ends") {
						out.WriteString("\n")
						foundEnds = true
						break
					}
				}
				if !foundEnds {
					return nil, errors.Wrapf(ErrSubcktEndsMissing, "cell %s", cellName)
				}
				delete(remaining, cellName)
			}
			if err := h.recordPortNames(cellName, tokens, portNamesOf); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	if len(remaining) > 0 {
		for cellName := range remaining {
			return nil, errors.Wrapf(ErrMissingSubckt, "cell %s", cellName)
		}
	}

	return &Harvest{Subckts: out.String(), PortNamesOf: portNamesOf}, nil
}

func (h *Harvester) recordPortNames(cellName string, tokens []string, portNamesOf map[string][]string) error {
	cell := h.network.FindLibertyCell(cellName)
	if cell == nil {
		return nil
	}

	portNames := make([]string, 0, len(tokens)-2)
	for _, portName := range tokens[2:] {
		port := cell.FindLibertyPort(portName)
		pgPort := cell.FindPgPort(portName)
		if port == nil && pgPort == nil && portName != h.powerName && portName != h.gndName {
			return errors.Wrapf(ErrSubcktPortUnmapped, "subckt %s port %s", cellName, portName)
		}
		portNames = append(portNames, portName)
	}
	portNamesOf[cellName] = portNames
	return nil
}
