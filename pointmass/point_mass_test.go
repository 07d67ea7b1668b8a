package pointmass

import (
	"math"
	"testing"

	geworld "github.com/geyang/ge-world"
	"github.com/geyang/ge-world/kinsim"
	"github.com/unixpickle/anyvec/anyvec64"
)

func TestReward(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	env, err := New(c, kinsim.NewPointMass(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		pos, goal []float64
		reward    float64
	}{
		{[]float64{0, 0}, []float64{0, 0}, 0},
		{[]float64{0.01, 0}, []float64{0, 0}, 0},
		{[]float64{0.02, 0}, []float64{0, 0}, -1},
		{[]float64{0.1, 0.1}, []float64{0.1, 0.085}, 0},
		{[]float64{0.3, -0.3}, []float64{-0.3, 0.3}, -1},
	}
	for _, cs := range cases {
		if r := env.Reward(cs.pos, cs.goal); r != cs.reward {
			t.Errorf("Reward(%v, %v) = %v (expected %v)",
				cs.pos, cs.goal, r, cs.reward)
		}
	}
}

func TestResetState(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	sim := kinsim.NewPointMass()
	env, err := New(c, sim, Config{Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		obs, err := env.Reset()
		if err != nil {
			t.Fatal(err)
		}
		pos := geworld.Float64s(obs)
		if len(pos) != 2 {
			t.Fatalf("observation length %d (expected 2)", len(pos))
		}
		for _, x := range pos {
			if math.Abs(x) > 0.1 {
				t.Errorf("start position %v outside the jitter range", x)
			}
		}

		// The goal lands in the trailing position slots and
		// matches the Controls.
		qpos := sim.QPos()
		goal := env.TrueGoal()
		if qpos[2] != goal[0] || qpos[3] != goal[1] {
			t.Errorf("goal slots %v (expected %v)", qpos[2:], goal)
		}
		for _, g := range goal {
			if g < GoalLow || g > GoalHigh {
				t.Errorf("goal coordinate %v outside [%v, %v]",
					g, GoalLow, GoalHigh)
			}
		}

		// The goal carries no velocity.
		qvel := sim.QVel()
		if qvel[2] != 0 || qvel[3] != 0 {
			t.Errorf("goal velocity %v (expected zeros)", qvel[2:])
		}
	}
}

func TestFixGoal(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	env, err := New(c, kinsim.NewPointMass(), Config{FixGoal: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.Reset(); err != nil {
		t.Fatal(err)
	}
	if env.TrueGoal() != [2]float64{} {
		t.Errorf("fixed goal %v (expected origin)", env.TrueGoal())
	}
}

func TestDiscreteActionSpace(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	env, err := New(c, kinsim.NewPointMass(), Config{Discrete: true})
	if err != nil {
		t.Fatal(err)
	}
	space, ok := env.ActionSpace().(*geworld.Discrete)
	if !ok {
		t.Fatal("expected a discrete action space")
	}
	if space.N != 8 {
		t.Errorf("table size %d (expected 8)", space.N)
	}
}

// A corrective continuous action lands the mass exactly on
// the fixed goal, which must terminate the episode with a
// zero reward.
func TestReachGoalScenario(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	sim := kinsim.NewPointMass()
	env, err := New(c, sim, Config{FixGoal: true, Seed: 5})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.Reset(); err != nil {
		t.Fatal(err)
	}

	// Park the mass at a known offset from the goal.
	qpos := sim.QPos()
	qpos[0], qpos[1] = 0.1, 0.1
	if err := sim.SetState(qpos, sim.QVel()); err != nil {
		t.Fatal(err)
	}

	// Idling keeps the episode going.
	_, reward, done, info, err := env.Step(geworld.Vector(c, []float64{0, 0}))
	if err != nil {
		t.Fatal(err)
	}
	if reward != -1 || done {
		t.Fatalf("idle step: reward=%v done=%v (expected -1, false)",
			reward, done)
	}
	if info["success"] != 0 {
		t.Errorf("idle step success=%v (expected 0)", info["success"])
	}

	// A frame-skip of 10 at dt=0.01 scales controls by 0.1,
	// so -1 per axis cancels the 0.1 offset in one step.
	obs, reward, done, info, err := env.Step(geworld.Vector(c, []float64{-1, -1}))
	if err != nil {
		t.Fatal(err)
	}
	if reward != 0 || !done {
		t.Fatalf("reaching step: reward=%v done=%v (expected 0, true)",
			reward, done)
	}
	if _, ok := info["dist"]; !ok {
		t.Error("info is missing the dist entry")
	}
	for _, x := range geworld.Float64s(obs) {
		if math.Abs(x) > DistanceThreshold {
			t.Errorf("final position %v not at the goal", x)
		}
	}
}

func TestStepZeroesMomentum(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	sim := kinsim.NewPointMass()
	env, err := New(c, sim, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.Reset(); err != nil {
		t.Fatal(err)
	}
	qpos := sim.QPos()
	if err := sim.SetState(qpos, []float64{3, 3, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if _, _, _, _, err := env.Step(geworld.Vector(c, []float64{0, 0})); err != nil {
		t.Fatal(err)
	}
	qvel := sim.QVel()
	if qvel[0] != 0 || qvel[1] != 0 {
		t.Errorf("velocity %v after a zero step (expected zeros)", qvel[:2])
	}
}
