// Package config reads the flat key-value configuration set of
// spec.md §6 from a JSON file, modeled on gofem's inp.Data/LinSolData
// (json-tagged struct with a SetDefault method), loaded with
// gosl/io.ReadFile rather than bare os.ReadFile to match the teacher's
// idiom.
package config

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// NetModel selects the coefficient-building strategy for the
// quadratic optimizer (§6 net_model).
type NetModel int

const (
	NetModelB2B NetModel = iota
	NetModelStar
	NetModelHPWL
	NetModelStarHPWL
)

// ConvergenceCriteria selects the top-level loop's stopping rule
// (§4.J): 1 is SimPL-style, 2 is POLAR.
type ConvergenceCriteria int

const (
	ConvergenceSimPL ConvergenceCriteria = 1
	ConvergencePolar ConvergenceCriteria = 2
)

// Config is the flat parameter set recognized by the core (§6),
// loaded from a JSON document. Field names are capitalized Go
// identifiers; json tags carry the spec's flat key names verbatim.
type Config struct {
	StripeWidthFactor float64 `json:"stripe_width_factor"`

	CgTolerance      float64 `json:"cg_tolerance"`
	CgIteration      int     `json:"cg_iteration"`
	CgIterationMaxNum int    `json:"cg_iteration_max_num"`
	CgStopCriterion  float64 `json:"cg_stop_criterion"`

	NetModelUpdateStopCriterion float64 `json:"net_model_update_stop_criterion"`
	EpsilonFactor               float64 `json:"epsilon_factor"`
	B2bUpdateMaxIteration       int     `json:"b2b_update_max_iteration"`
	MaxIter                     int     `json:"max_iter"`

	NumberOfCellInBin int `json:"number_of_cell_in_bin"`
	NetIgnoreThreshold int `json:"net_ignore_threshold"`

	ConvergenceCriteria     ConvergenceCriteria `json:"convergence_criteria"`
	SimplLalConvergeCriterion double            `json:"simpl_LAL_converge_criterion"`
	PolarConvergeCriterion    float64           `json:"polar_converge_criterion"`

	NetModel NetModel `json:"net_model"`

	// TargetDensity is the look-ahead legalizer's target filling rate
	// (§4.E, §4.F); not named explicitly among the §6 keys but required
	// by every grid-bin/cluster computation, so it is carried here with
	// a conservative default.
	TargetDensity float64 `json:"target_density"`

	// CenterWeightFactor is the region-centering coefficient factor
	// (§4.B step 6, "~0.03/sqrt(n)"); kept configurable per the open
	// question recorded in DESIGN.md.
	CenterWeightFactor float64 `json:"center_weight_factor"`

	// MinBoxAspectLo/Hi bound the minimum-box aspect ratio (§4.G,
	// default 0.33..3.0).
	MinBoxAspectLo float64 `json:"min_box_aspect_lo"`
	MinBoxAspectHi float64 `json:"min_box_aspect_hi"`

	// DumpEvery, when > 0, makes cmd/dali-place write one debugdump
	// snapshot of the final placement (plumbing, §1 "MATLAB debug
	// dumps" collaborator). No snapshots are taken during the outer
	// iterations; the value is not used as an interval.
	DumpEvery int `json:"dump_every"`
}

// double is a local alias kept only so the json tag above reads
// naturally; it is exactly float64.
type double = float64

// SetDefault populates every field with the §6 default, mirroring
// inp.Data.SetDefault / inp.LinSolData.SetDefault.
func (c *Config) SetDefault() {
	c.StripeWidthFactor = 2.0

	c.CgTolerance = 1e-35
	c.CgIteration = 10
	c.CgIterationMaxNum = 1000
	c.CgStopCriterion = 0.0025

	c.NetModelUpdateStopCriterion = 0.01
	c.EpsilonFactor = 1.5
	c.B2bUpdateMaxIteration = 50
	c.MaxIter = 100

	c.NumberOfCellInBin = 30
	c.NetIgnoreThreshold = 100

	c.ConvergenceCriteria = ConvergenceSimPL
	c.SimplLalConvergeCriterion = 0.005
	c.PolarConvergeCriterion = 0.08

	c.NetModel = NetModelB2B

	c.TargetDensity = 0.7
	c.CenterWeightFactor = 0.03

	c.MinBoxAspectLo = 0.33
	c.MinBoxAspectHi = 3.0

	c.DumpEvery = 0
}

// Validate aborts with a clear diagnostic on any precondition failure
// (§7): non-positive iteration caps, out-of-range ratios, etc.
func (c *Config) Validate() {
	if c.CgIteration <= 0 || c.CgIterationMaxNum <= 0 {
		chk.Panic("cg_iteration and cg_iteration_max_num must be positive")
	}
	if c.B2bUpdateMaxIteration <= 0 || c.MaxIter <= 0 {
		chk.Panic("b2b_update_max_iteration and max_iter must be positive")
	}
	if c.NetIgnoreThreshold < 2 {
		chk.Panic("net_ignore_threshold must be >= 2")
	}
	if c.NumberOfCellInBin <= 0 {
		chk.Panic("number_of_cell_in_bin must be positive")
	}
	if c.TargetDensity <= 0 || c.TargetDensity > 1 {
		chk.Panic("target_density must be in (0,1]")
	}
	if c.MinBoxAspectLo <= 0 || c.MinBoxAspectHi < c.MinBoxAspectLo {
		chk.Panic("invalid min box aspect ratio range [%v,%v]", c.MinBoxAspectLo, c.MinBoxAspectHi)
	}
}

// ReadFile loads a Config from a JSON file, defaulting any field the
// document omits, matching inp's read-then-PostProcess flow.
func ReadFile(path string) *Config {
	c := new(Config)
	c.SetDefault()
	b := io.ReadFile(path)
	if err := json.Unmarshal(b, c); err != nil {
		chk.Panic("cannot parse configuration file %q:\n%v", path, err)
	}
	c.Validate()
	return c
}
