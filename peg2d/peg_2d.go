// Package peg2d implements the 2D peg insertion
// environment. A three-joint arm carries a peg toward a
// slot whose vertical offset is the episode goal.
//
// Registered variants show the slot, or move it out of the
// way entirely for free exploration.
package peg2d

import (
	"fmt"
	"math"

	geworld "github.com/geyang/ge-world"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// FrameWidth and FrameHeight are the dimensions of image
// observations.
const (
	FrameWidth  = 64
	FrameHeight = 64
)

const defaultFrameSkip = 10

// Config configures a peg insertion environment. The zero
// value is a continuous environment observing x and goal.
type Config struct {
	// FrameSkip is the number of simulator substeps per
	// environment step. Defaults to 10.
	FrameSkip int

	// ObsKeys selects the observation components, assembled
	// in the listed order. Defaults to {x, goal}.
	ObsKeys []geworld.ObsKey

	// ObjLow and ObjHigh bound the joint angles declared by
	// the x observation space.
	ObjLow  []float64
	ObjHigh []float64

	// GoalLow and GoalHigh bound the slot-offset draw.
	// Default to -0.02 and 0.02.
	GoalLow  float64
	GoalHigh float64

	// ActScale is the magnitude of the discrete action
	// levels. Defaults to 1.
	ActScale float64

	// Discrete selects the discrete action table.
	Discrete bool

	// IDLess drops the all-zero tuple from the discrete
	// table, leaving 26 actions instead of 27.
	IDLess bool

	// Free moves the slot out of view before every step,
	// for goal-free exploration.
	Free bool

	// DoneOnGoal ends the episode once the reach counter
	// passes 1.
	DoneOnGoal bool

	// RenderWidth and RenderHeight are the dimensions asked
	// of the simulator; frames are rescaled to FrameWidth x
	// FrameHeight. Default to the frame dimensions.
	RenderWidth  int
	RenderHeight int

	// Seed seeds the env generator shared by the goal and
	// state samplers.
	Seed uint64
}

// Env is the 2D peg insertion environment.
type Env struct {
	creator anyvec.Creator
	sim     geworld.Sim
	cfg     Config
	obsKeys []geworld.ObsKey
	actions *geworld.ActionTable
	imager  *geworld.Imager

	rng    *rand.Rand
	goals  *goalSampler
	states *stateSampler

	goal        float64
	goalImg     anyvec.Vector
	reachCounts int
}

// New creates a peg environment driven by sim. The scene
// must expose exactly four position slots: three arm joints
// plus the slot offset.
func New(c anyvec.Creator, sim geworld.Sim, cfg Config) (env *Env, err error) {
	defer essentials.AddCtxTo("create peg env", &err)
	if cfg.FrameSkip == 0 {
		cfg.FrameSkip = defaultFrameSkip
	}
	if cfg.ObsKeys == nil {
		cfg.ObsKeys = []geworld.ObsKey{geworld.ObsX, geworld.ObsGoal}
	}
	if cfg.ObjLow == nil {
		cfg.ObjLow = []float64{-math.Pi / 2, -math.Pi + 0.2, -math.Pi + 0.2}
	}
	if cfg.ObjHigh == nil {
		cfg.ObjHigh = []float64{math.Pi / 2, math.Pi - 0.2, math.Pi - 0.2}
	}
	if cfg.GoalLow == 0 && cfg.GoalHigh == 0 {
		cfg.GoalLow, cfg.GoalHigh = -0.02, 0.02
	}
	if cfg.ActScale == 0 {
		cfg.ActScale = 1
	}
	if cfg.RenderWidth == 0 {
		cfg.RenderWidth = FrameWidth
	}
	if cfg.RenderHeight == 0 {
		cfg.RenderHeight = FrameHeight
	}
	if len(sim.QPos()) != 4 {
		return nil, fmt.Errorf("scene needs 4 position slots, got %d",
			len(sim.QPos()))
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	env = &Env{
		creator: c,
		sim:     sim,
		cfg:     cfg,
		obsKeys: cfg.ObsKeys,
		rng:     rng,
		goals:   &goalSampler{low: cfg.GoalLow, high: cfg.GoalHigh, rng: rng},
		states:  &stateSampler{rng: rng},
		imager: geworld.NewImager(c, cfg.RenderWidth, cfg.RenderHeight,
			FrameWidth, FrameHeight),
	}
	if cfg.Discrete {
		env.actions = geworld.NewActionTable(cfg.ActScale, 3, cfg.IDLess)
	}
	return env, nil
}

// Actions returns the discrete action table, or nil for the
// continuous variant.
func (e *Env) Actions() *geworld.ActionTable {
	return e.actions
}

// Goal returns the slot offset of the current episode.
func (e *Env) Goal() float64 {
	return e.goal
}

// ActionSpace describes the action space: Discrete(26) or
// Discrete(27) for the discrete variant, a 4D box (three
// joints plus the slot actuator) otherwise.
func (e *Env) ActionSpace() geworld.Space {
	if e.cfg.Discrete {
		return e.actions.Space()
	}
	return geworld.NewBox(-e.cfg.ActScale, e.cfg.ActScale, 4)
}

// ObservationSpace describes the configured observation
// components.
func (e *Env) ObservationSpace() geworld.Dict {
	dict := geworld.Dict{}
	for _, key := range e.obsKeys {
		switch key {
		case geworld.ObsX:
			dict[key] = &geworld.Box{Low: e.cfg.ObjLow, High: e.cfg.ObjHigh}
		case geworld.ObsGoal:
			dict[key] = &geworld.Box{
				Low:  []float64{e.cfg.GoalLow},
				High: []float64{e.cfg.GoalHigh},
			}
		case geworld.ObsImg, geworld.ObsGoalImg:
			dict[key] = geworld.NewBox(0, 1, FrameWidth*FrameHeight)
		}
	}
	return dict
}

// ComputeReward scores an achieved goal against a desired
// one. The active step formulation does not call it; Step
// penalizes control magnitude instead.
func (e *Env) ComputeReward(achieved, desired []float64) float64 {
	return 1
}

// Reset starts a new episode with a freshly sampled arm
// state and slot offset.
func (e *Env) Reset() (geworld.DictObs, error) {
	return e.ResetTo(nil, nil)
}

// ResetTo starts a new episode from the provided joint
// state and slot offset, sampling whichever is nil.
//
// The goal image is captured here: the arm is posed at the
// slot mouth with the slot itself pushed out of view, the
// scene is rendered, and only then is the episode state
// installed.
func (e *Env) ResetTo(state []float64, goal *float64) (obs geworld.DictObs, err error) {
	defer essentials.AddCtxTo("reset peg env", &err)
	e.reachCounts = 0
	if state == nil {
		if state, err = e.states.Sample(); err != nil {
			return
		}
	}
	var g float64
	if goal == nil {
		if g, err = e.goals.Sample(); err != nil {
			return
		}
	} else {
		g = *goal
	}
	e.goal = g

	// Pose the arm so the peg tip sits at the slot mouth.
	// The two solutions of the elbow angle are used with
	// equal probability.
	qpos := make([]float64, 4)
	qpos[3] = 1
	pegX, pegY := -0.005, g/10
	base := 0.03 + pegX
	hypo := math.Hypot(base, pegY)
	a0 := math.Atan(pegY / base)
	a1 := math.Acos(hypo / 0.04)
	if e.rng.Float64() < 0.5 {
		a1 = -a1
	}
	qpos[0] = a0 + a1
	qpos[1] = -2 * a1
	qpos[2] = -qpos[0] - qpos[1]
	if err = e.sim.SetState(qpos, e.sim.QVel()); err != nil {
		return
	}
	if e.goalImg, err = e.renderFrame(); err != nil {
		return
	}

	// Now install the episode state, with zero velocity.
	qpos = append(append([]float64{}, state...), g)
	if e.cfg.Free {
		qpos[3] = 1
	}
	if err = e.sim.SetState(qpos, make([]float64, len(e.sim.QVel()))); err != nil {
		return
	}
	return e.observe(nil)
}

// Step applies an action and advances the simulator. The
// reward is the negative magnitude of the applied control
// vector, which includes the slot value appended as the
// fourth dimension for discrete actions.
func (e *Env) Step(action anyvec.Vector) (obs geworld.DictObs, reward float64,
	done bool, info geworld.Info, err error) {
	defer essentials.AddCtxTo("step peg env", &err)

	qpos, qvel := e.sim.QPos(), e.sim.QVel()
	qvel[len(qvel)-1] = 0
	if e.cfg.Free {
		qpos[len(qpos)-1] = 1
	}
	if err = e.sim.SetState(qpos, qvel); err != nil {
		return
	}

	var ctrl []float64
	if e.cfg.Discrete {
		ctrl = append(e.actions.Decode(action), e.goal)
	} else {
		ctrl = geworld.Float64s(action)
	}
	if err = e.sim.Advance(ctrl, e.cfg.FrameSkip); err != nil {
		return
	}
	if obs, err = e.observe(ctrl); err != nil {
		return
	}

	reward = -floats.Norm(ctrl, 2)
	if e.reachCounts > 0 {
		if reward == 0 {
			e.reachCounts++
		} else {
			e.reachCounts = 0
		}
	} else if reward == 0 {
		e.reachCounts = 1
	}
	if e.cfg.DoneOnGoal && e.reachCounts > 1 {
		done = true
		e.reachCounts = 0
	}

	info = geworld.Info{"success": 0}
	return obs, reward, done, info, nil
}

// observe assembles the configured observation components.
// ctrl is the control applied this step, or nil at reset,
// in which case the raw-action component is skipped.
func (e *Env) observe(ctrl []float64) (geworld.DictObs, error) {
	obs := geworld.DictObs{}
	qpos := e.sim.QPos()
	for _, key := range e.obsKeys {
		switch key {
		case geworld.ObsX:
			obs[key] = geworld.Vector(e.creator, qpos[:3])
		case geworld.ObsGoal:
			obs[key] = geworld.Vector(e.creator, qpos[3:])
		case geworld.ObsImg:
			// Push the slot out of frame, render, then put it
			// back. Captured fresh on every request.
			saved := qpos[3]
			qpos[3] = 1
			if err := e.sim.SetState(qpos, e.sim.QVel()); err != nil {
				return nil, err
			}
			frame, err := e.renderFrame()
			if err != nil {
				return nil, err
			}
			qpos[3] = saved
			if err := e.sim.SetState(qpos, e.sim.QVel()); err != nil {
				return nil, err
			}
			obs[key] = frame
		case geworld.ObsGoalImg:
			obs[key] = e.goalImg
		case geworld.ObsAction:
			if ctrl != nil {
				obs[key] = geworld.Vector(e.creator, ctrl)
			}
		default:
			return nil, fmt.Errorf("unknown observation key: %q", key)
		}
	}
	return obs, nil
}

func (e *Env) renderFrame() (anyvec.Vector, error) {
	raw, err := e.sim.RenderGrey(e.cfg.RenderWidth, e.cfg.RenderHeight)
	if err != nil {
		return nil, err
	}
	return e.imager.Image(raw), nil
}

func init() {
	imgKeys := []geworld.ObsKey{
		geworld.ObsX, geworld.ObsGoal, geworld.ObsImg, geworld.ObsGoalImg,
	}
	geworld.RegisterDict("Peg2DImgDiscreteIdLess-v0", 1000,
		func(c anyvec.Creator, s geworld.Sim) (geworld.DictEnv, error) {
			return New(c, s, Config{Discrete: true, ObsKeys: imgKeys})
		})
	geworld.RegisterDict("Peg2DFreeImgDiscreteIdLess-v0", 1000,
		func(c anyvec.Creator, s geworld.Sim) (geworld.DictEnv, error) {
			return New(c, s, Config{Discrete: true, Free: true, ObsKeys: imgKeys})
		})
}
