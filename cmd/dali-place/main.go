// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/asyncvlsi/Dali-sub002/circuit"
	"github.com/asyncvlsi/Dali-sub002/config"
	"github.com/asyncvlsi/Dali-sub002/debugdump"
	"github.com/asyncvlsi/Dali-sub002/gplace"
	"github.com/asyncvlsi/Dali-sub002/grid"
)

// netlistDoc is the JSON interface contract this entry point reads: a
// fully parsed cell/net/region description. Real LEF/DEF/bookshelf
// ingestion is an external collaborator (§1 Non-goals) this core only
// exposes the Circuit constructor to.
type netlistDoc struct {
	Types []circuit.BlockType `json:"types"`
	Blocks []struct {
		TypeIdx int            `json:"type_idx"`
		LLX     float64        `json:"llx"`
		LLY     float64        `json:"lly"`
		Stat    circuit.Status `json:"stat"`
		Orient  circuit.Orient `json:"orient"`
	} `json:"blocks"`
	Nets []struct {
		Pins   []circuit.BlockPin `json:"pins"`
		Weight float64            `json:"weight"`
	} `json:"nets"`
	Region    circuit.Region              `json:"region"`
	Blockages []circuit.PlacementBlockage `json:"blockages"`
}

func loadCircuit(path string, netIgnoreThreshold int) *circuit.Circuit {
	var doc netlistDoc
	b := io.ReadFile(path)
	if err := json.Unmarshal(b, &doc); err != nil {
		chk.Panic("cannot parse netlist file %q:\n%v", path, err)
	}

	blocks := make([]circuit.Block, len(doc.Blocks))
	for i, bd := range doc.Blocks {
		blocks[i] = circuit.Block{TypeIdx: bd.TypeIdx, LLX: bd.LLX, LLY: bd.LLY, Stat: bd.Stat, Orient: bd.Orient}
	}
	nets := make([]circuit.Net, len(doc.Nets))
	for i, nd := range doc.Nets {
		nets[i] = circuit.Net{Pins: nd.Pins, Weight: nd.Weight}
	}
	return circuit.New(doc.Types, blocks, nets, doc.Region, doc.Blockages, netIgnoreThreshold)
}

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	netlistfn, _ := io.ArgToFilename(0, "", ".json", true)
	cfgfn := io.ArgToString(1, "")
	dumpDir := io.ArgToString(2, "/tmp")
	verbose := io.ArgToBool(3, true)

	if verbose {
		io.PfWhite("\nDali-sub002 -- global placement core\n\n")
		io.Pf("\n%v\n", io.ArgsTable(
			"netlist filename", "netlistfn", netlistfn,
			"configuration filename", "cfgfn", cfgfn,
			"debug dump directory", "dumpDir", dumpDir,
			"show messages", "verbose", verbose,
		))
	}

	defer utl.DoProf(false)()

	cfg := new(config.Config)
	cfg.SetDefault()
	if cfgfn != "" {
		cfg = config.ReadFile(cfgfn)
	} else {
		cfg.Validate()
	}

	c := loadCircuit(netlistfn, cfg.NetIgnoreThreshold)

	p := gplace.NewPlacer(c, cfg)
	finished := p.Run()

	if verbose {
		io.Pf("\nfinal lower-bound HPWL: %12.4f\n", p.LowerBoundHpwl[len(p.LowerBoundHpwl)-1])
		io.Pf("final upper-bound HPWL: %12.4f\n", p.UpperBoundHpwl[len(p.UpperBoundHpwl)-1])
		if finished {
			io.PfGreen("placement finished\n")
		} else {
			io.PfYel("placement did not finish\n")
		}
	}

	if cfg.DumpEvery > 0 {
		m := grid.NewMesh(c, cfg)
		m.AssignCells()
		debugdump.DumpPlacement(c, m, dumpDir, "dali-place-final")
	}
}
