package geworld

import (
	"fmt"

	"github.com/unixpickle/anyvec"
)

// Info carries auxiliary per-step diagnostics, such as goal
// distances and success flags.
type Info map[string]float64

// An ObsKey names a component of a keyed observation.
type ObsKey string

const (
	// ObsX is the proprioceptive joint-position component.
	ObsX ObsKey = "x"

	// ObsGoal is the goal encoding stored in the trailing
	// position slots.
	ObsGoal ObsKey = "goal"

	// ObsImg is a greyscale frame rendered from the current
	// state with the goal slot pushed out of view.
	ObsImg ObsKey = "img"

	// ObsGoalImg is the frame captured at reset time with
	// the arm posed at the goal.
	ObsGoalImg ObsKey = "goal_img"

	// ObsAction is the raw control vector applied on the
	// step that produced the observation.
	ObsAction ObsKey = "a"
)

// A DictObs is an observation composed of keyed vector
// components.
type DictObs map[ObsKey]anyvec.Vector

// An Env is an instance of an RL environment.
//
// It mirrors anyrl.Env, except that Step additionally
// produces an Info mapping. Use FlatEnv to plug an Env into
// code that expects the anyrl interface.
type Env interface {
	Reset() (observation anyvec.Vector, err error)
	Step(action anyvec.Vector) (observation anyvec.Vector,
		reward float64, done bool, info Info, err error)
}

// A DictEnv is an environment whose observations are keyed
// mappings rather than single flat vectors.
type DictEnv interface {
	Reset() (observation DictObs, err error)
	Step(action anyvec.Vector) (observation DictObs,
		reward float64, done bool, info Info, err error)
}

// Float64s extracts the data of a vector as a []float64,
// converting from float32 if necessary.
func Float64s(vec anyvec.Vector) []float64 {
	switch data := vec.Data().(type) {
	case []float64:
		return data
	case []float32:
		res := make([]float64, len(data))
		for i, x := range data {
			res[i] = float64(x)
		}
		return res
	default:
		panic(fmt.Sprintf("unsupported numeric list: %T", data))
	}
}

// Vector packs a []float64 into a vector owned by c.
func Vector(c anyvec.Creator, data []float64) anyvec.Vector {
	return c.MakeVectorData(c.MakeNumericList(data))
}
