// Package pointmass implements the 2D point-mass reaching
// environment. A planar mass is pushed around by torque
// control and rewarded for parking within a small radius of
// a sampled goal.
package pointmass

import (
	"fmt"
	"math/rand"

	geworld "github.com/geyang/ge-world"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DistanceThreshold is the goal radius below which the
	// reach counts as a success.
	DistanceThreshold = 0.02

	// DiscreteScale is the per-axis force magnitude used by
	// the discrete action table.
	DiscreteScale = 0.5

	defaultFrameSkip = 10
)

// Config configures a point-mass environment. The zero
// value is a single-task continuous environment.
type Config struct {
	// FrameSkip is the number of simulator substeps per
	// environment step. Defaults to 10.
	FrameSkip int

	// Discrete selects the 8-entry discrete action table
	// instead of the continuous 2D action space.
	Discrete bool

	// KGoals is the number of goals held by the Controls.
	// Defaults to 1.
	KGoals int

	// FixGoal pins the goal to the origin on every reset.
	FixGoal bool

	// Seed seeds the per-env generators: the Controls goal
	// generator and the reset pose noise.
	Seed uint64
}

// Env is the 2D point-mass reaching environment.
type Env struct {
	creator  anyvec.Creator
	sim      geworld.Sim
	cfg      Config
	controls *Controls
	actions  *geworld.ActionTable

	poseNoise distuv.Uniform
	velNoise  distuv.Uniform
}

// New creates a point-mass environment driven by sim. The
// scene must expose at least four position slots: two for
// the mass and two trailing slots for the goal encoding.
func New(c anyvec.Creator, sim geworld.Sim, cfg Config) (env *Env, err error) {
	defer essentials.AddCtxTo("create point-mass env", &err)
	if cfg.FrameSkip == 0 {
		cfg.FrameSkip = defaultFrameSkip
	}
	if cfg.KGoals == 0 {
		cfg.KGoals = 1
	}
	if len(sim.QPos()) < 4 {
		return nil, fmt.Errorf("scene needs at least 4 position slots, got %d",
			len(sim.QPos()))
	}
	src := exprand.NewSource(cfg.Seed)
	env = &Env{
		creator:   c,
		sim:       sim,
		cfg:       cfg,
		controls:  NewControls(cfg.KGoals, cfg.Seed),
		poseNoise: distuv.Uniform{Min: -0.1, Max: 0.1, Src: src},
		velNoise:  distuv.Uniform{Min: -0.005, Max: 0.005, Src: src},
	}
	if cfg.Discrete {
		env.actions = geworld.NewActionTable(DiscreteScale, 2, true)
	}
	return env, nil
}

// K returns the number of tasks held by the Controls.
func (e *Env) K() int {
	return e.controls.K()
}

// Controls returns the task-control state holder.
func (e *Env) Controls() *Controls {
	return e.controls
}

// ActionSpace describes the action space: Discrete(8) for
// the discrete variant, a +-1 box otherwise.
func (e *Env) ActionSpace() geworld.Space {
	if e.cfg.Discrete {
		return e.actions.Space()
	}
	return geworld.NewBox(-1, 1, 2)
}

// ObservationSpace describes the 2D position observation.
func (e *Env) ObservationSpace() geworld.Space {
	return geworld.NewBox(GoalLow, GoalHigh, 2)
}

// Reward is 0 when pos is within DistanceThreshold of goal
// and -1 otherwise.
func (e *Env) Reward(pos, goal []float64) float64 {
	delta := make([]float64, len(pos))
	floats.SubTo(delta, pos, goal)
	if floats.Norm(delta, 2) < DistanceThreshold {
		return 0
	}
	return -1
}

// Reset starts a new episode: the mass is jittered around
// the scene origin and a fresh goal is written into the
// trailing position slots.
func (e *Env) Reset() (obs anyvec.Vector, err error) {
	defer essentials.AddCtxTo("reset point-mass env", &err)
	qpos := append([]float64{}, e.sim.InitQPos()...)
	for i := range qpos {
		qpos[i] += e.poseNoise.Rand()
	}

	// The goal draw deliberately comes from the shared
	// package-level source; Controls and the pose noise use
	// the env's own seeded generators.
	goal := [2]float64{
		rand.Float64()*(GoalHigh-GoalLow) + GoalLow,
		rand.Float64()*(GoalHigh-GoalLow) + GoalLow,
	}
	if e.cfg.FixGoal {
		goal = [2]float64{}
	}
	e.controls.SampleGoal([][2]float64{goal})
	n := len(qpos)
	qpos[n-2], qpos[n-1] = goal[0], goal[1]

	qvel := append([]float64{}, e.sim.InitQVel()...)
	for i := range qvel {
		qvel[i] += e.velNoise.Rand()
	}
	qvel[len(qvel)-2], qvel[len(qvel)-1] = 0, 0

	if err = e.sim.SetState(qpos, qvel); err != nil {
		return
	}
	return e.observe(), nil
}

// Step applies an action, advances the simulator, and
// scores the post-step position against the true goal. The
// episode ends exactly when the reward is 0.
func (e *Env) Step(action anyvec.Vector) (obs anyvec.Vector, reward float64,
	done bool, info geworld.Info, err error) {
	defer essentials.AddCtxTo("step point-mass env", &err)

	// The mass carries no momentum between steps.
	qpos, qvel := e.sim.QPos(), e.sim.QVel()
	qvel[0], qvel[1] = 0, 0
	if err = e.sim.SetState(qpos, qvel); err != nil {
		return
	}

	var ctrl []float64
	if e.cfg.Discrete {
		ctrl = e.actions.Decode(action)
	} else {
		ctrl = geworld.Float64s(action)
	}

	dist, err := e.goalDistance()
	if err != nil {
		return
	}

	if err = e.sim.Advance(ctrl, e.cfg.FrameSkip); err != nil {
		return
	}
	pos := e.position()
	goal := e.controls.TrueGoal()
	reward = e.Reward(pos, goal[:])
	done = reward == 0

	info = geworld.Info{"dist": dist, "success": 0}
	if dist < DistanceThreshold {
		info["success"] = 1
	}
	return e.observe(), reward, done, info, nil
}

// SampleTask resamples or installs the active task index.
// See Controls.SampleTask.
func (e *Env) SampleTask(index int) (int, error) {
	return e.controls.SampleTask(index)
}

// GoalIndex returns the active task index.
func (e *Env) GoalIndex() int {
	return e.controls.Index()
}

// TrueGoal returns the goal selected by the active task
// index.
func (e *Env) TrueGoal() [2]float64 {
	return e.controls.TrueGoal()
}

func (e *Env) position() []float64 {
	return e.sim.QPos()[:2]
}

func (e *Env) observe() anyvec.Vector {
	return geworld.Vector(e.creator, e.position())
}

// goalDistance measures the planar distance between the
// goal and object bodies before the simulator advances.
func (e *Env) goalDistance() (float64, error) {
	goalCOM, err := e.sim.BodyCOM("goal")
	if err != nil {
		return 0, err
	}
	objCOM, err := e.sim.BodyCOM("object")
	if err != nil {
		return 0, err
	}
	delta := []float64{goalCOM[0] - objCOM[0], goalCOM[1] - objCOM[1]}
	return floats.Norm(delta, 2), nil
}

func init() {
	geworld.Register("PointMassDiscrete-v0", 50,
		func(c anyvec.Creator, s geworld.Sim) (geworld.Env, error) {
			return New(c, s, Config{Discrete: true})
		})
}
