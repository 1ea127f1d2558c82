package config

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_set_default(tst *testing.T) {
	chk.PrintTitle("set_default. every field gets the documented default")
	c := new(Config)
	c.SetDefault()
	chk.Scalar(tst, "target_density", 1e-12, c.TargetDensity, 0.7)
	chk.Scalar(tst, "center_weight_factor", 1e-12, c.CenterWeightFactor, 0.03)
	chk.Scalar(tst, "simpl_LAL_converge_criterion", 1e-12, c.SimplLalConvergeCriterion, 0.005)
	chk.IntAssert(int(c.ConvergenceCriteria), int(ConvergenceSimPL))
	chk.IntAssert(int(c.NetModel), int(NetModelB2B))
}

func Test_validate_rejects_bad_target_density(tst *testing.T) {
	chk.PrintTitle("validate. target_density outside (0,1] aborts")
	c := new(Config)
	c.SetDefault()
	c.TargetDensity = 1.5
	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("expected panic on target_density > 1")
		}
	}()
	c.Validate()
}

func Test_validate_rejects_bad_aspect_range(tst *testing.T) {
	chk.PrintTitle("validate. min_box aspect range with hi < lo aborts")
	c := new(Config)
	c.SetDefault()
	c.MinBoxAspectLo = 2
	c.MinBoxAspectHi = 1
	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("expected panic on MinBoxAspectHi < MinBoxAspectLo")
		}
	}()
	c.Validate()
}
