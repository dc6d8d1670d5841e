// Command pathspice writes a SPICE deck for one expanded timing path.
// Since no static-timing-analysis engine ships in this module, the
// path and its collaborators come from pkg/stafake's built-in
// inverter fixture; only the six file/net-name parameters spec.md §6
// names are real flags. A host STA tool embedding pkg/deck instead
// calls deck.WritePathSpice directly with its own collaborators.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/edp1096/pathspice/pkg/deck"
	"github.com/edp1096/pathspice/pkg/stafake"
)

func main() {
	spiceFile := flag.String("spice", "pathspice.sp", "output SPICE deck path")
	subcktFile := flag.String("subckt", "pathspice_subckt.sp", "output harvested subckt path")
	libSubcktFile := flag.String("libsubckt", "fixture_lib.sp", "vendor subckt library path (seeded from the demo fixture if missing)")
	modelFile := flag.String("model", "models.lib", "device model file named in the deck's .include")
	powerName := flag.String("power", "", "power supply net name (defaults to the fixture's own rail)")
	gndName := flag.String("gnd", "", "ground supply net name (defaults to the fixture's own rail)")
	flag.Parse()

	fixture := stafake.NewInverterFixture()

	if *powerName == "" {
		*powerName = fixture.PowerName
	}
	if *gndName == "" {
		*gndName = fixture.GndName
	}

	if _, err := os.Stat(*libSubcktFile); os.IsNotExist(err) {
		if err := os.WriteFile(*libSubcktFile, []byte(fixture.LibSubckt), 0o644); err != nil {
			log.Fatalf("pathspice: seed vendor library %s: %v", *libSubcktFile, err)
		}
	}

	cfg := deck.Config{
		SpiceFilename:     *spiceFile,
		SubcktFilename:    *subcktFile,
		LibSubcktFilename: *libSubcktFile,
		ModelFilename:     *modelFile,
		PowerName:         *powerName,
		GndName:           *gndName,

		Network:    fixture.Network,
		Path:       fixture.Path,
		Library:    fixture.Library,
		Dcalc:      fixture.Dcalc,
		Parasitics: fixture.Parasitics,
		Sim:        fixture.Sim,
	}

	if err := deck.WritePathSpice(cfg); err != nil {
		log.Fatalf("pathspice: %v", err)
	}

	log.Printf("pathspice: wrote %s and %s", *spiceFile, *subcktFile)
}
