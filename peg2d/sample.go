package peg2d

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// GoodGoal reports whether a slot offset is reachable by
// the arm.
func GoodGoal(goal float64) bool {
	return goal < 0.26 && -0.26 < goal
}

// GoodState reports whether the first joint angle keeps the
// arm on the reachable side of the scene.
func GoodState(state []float64) bool {
	return state[0] < math.Pi/2 && -math.Pi/2 < state[0]
}

// Candidates are drawn in batches of sampleBatch; a batch
// with no valid candidate is thrown away whole and redrawn.
// maxSampleBatches bounds the redraws so a degenerate range
// surfaces as an error instead of a hang.
const (
	sampleBatch      = 4
	maxSampleBatches = 10000
)

// goalSampler rejection-samples slot offsets in [low, high]
// until one satisfies GoodGoal.
type goalSampler struct {
	low, high float64
	rng       *rand.Rand
}

func (g *goalSampler) Sample() (float64, error) {
	u := distuv.Uniform{Min: g.low, Max: g.high, Src: g.rng}
	for i := 0; i < maxSampleBatches; i++ {
		var batch [sampleBatch]float64
		for j := range batch {
			batch[j] = u.Rand()
		}
		for _, cand := range batch {
			if GoodGoal(cand) {
				return cand, nil
			}
		}
	}
	return 0, fmt.Errorf("sample goal: no candidate in [%v, %v] passed "+
		"after %d batches", g.low, g.high, maxSampleBatches)
}

// stateSampler rejection-samples 3-joint arm configurations
// whose geometry is consistent with reaching toward one
// side of the scene.
type stateSampler struct {
	rng *rand.Rand
}

func (s *stateSampler) Sample() ([]float64, error) {
	uJoint := distuv.Uniform{Min: -1.5, Max: 1.5, Src: s.rng}
	uSpread := distuv.Uniform{Min: 0, Max: math.Pi / 2, Src: s.rng}
	uWrist := distuv.Uniform{Min: 0, Max: math.Pi / 4, Src: s.rng}
	for i := 0; i < maxSampleBatches; i++ {
		for j := 0; j < sampleBatch; j++ {
			j0 := uJoint.Rand()
			spread := uSpread.Rand()
			cand := []float64{
				j0,
				-j0 - sign(j0)*spread,
				sign(j0)*spread + uWrist.Rand(),
			}
			if GoodState(cand) {
				return cand, nil
			}
		}
	}
	return nil, fmt.Errorf("sample state: no candidate passed after %d batches",
		maxSampleBatches)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
