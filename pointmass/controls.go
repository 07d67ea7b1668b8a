package pointmass

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// GoalLow and GoalHigh bound each coordinate of a sampled
// goal.
const (
	GoalLow  = -0.3
	GoalHigh = 0.3
)

// Controls holds the goal collection and the active task
// index for the multi-goal point-mass task.
//
// The index always starts at 0, so without an explicit
// SampleTask call this behaves exactly like the single-task
// baseline. For multi-task use, resample the task each time
// after resetting the environment.
type Controls struct {
	k     int
	rng   *rand.Rand
	goals [][2]float64
	index int
}

// NewControls creates a Controls holding kGoals goals drawn
// from its own seeded generator.
func NewControls(kGoals int, seed uint64) *Controls {
	c := &Controls{
		k:   kGoals,
		rng: rand.New(rand.NewSource(seed)),
	}
	c.SampleGoal(nil)
	return c
}

// Seed reseeds the goal generator.
func (c *Controls) Seed(seed uint64) {
	c.rng.Seed(seed)
}

// K returns the number of tasks.
func (c *Controls) K() int {
	return c.k
}

// Index returns the active task index.
func (c *Controls) Index() int {
	return c.index
}

// TrueGoal returns the goal selected by the active task
// index.
func (c *Controls) TrueGoal() [2]float64 {
	return c.goals[c.index]
}

// Goals returns the current goal collection.
func (c *Controls) Goals() [][2]float64 {
	return c.goals
}

// SampleGoal installs the provided goals, or draws k fresh
// ones when goals is nil.
func (c *Controls) SampleGoal(goals [][2]float64) [][2]float64 {
	if goals == nil {
		goals = c.drawGoals()
	}
	c.goals = goals
	return c.goals
}

func (c *Controls) drawGoals() [][2]float64 {
	u := distuv.Uniform{Min: GoalLow, Max: GoalHigh, Src: c.rng}
	res := make([][2]float64, c.k)
	for i := range res {
		res[i] = [2]float64{u.Rand(), u.Rand()}
	}
	return res
}

// SampleTask picks the active task index. A negative index
// draws one uniformly from [0, k); otherwise the given
// index is validated and installed.
func (c *Controls) SampleTask(index int) (int, error) {
	if index < 0 {
		c.index = c.rng.Intn(c.k)
		return c.index, nil
	}
	if index >= c.k {
		return 0, fmt.Errorf("sample task: index %d out of range [0, %d)",
			index, c.k)
	}
	c.index = index
	return c.index, nil
}

func (c *Controls) String() string {
	return fmt.Sprintf("Controls: index(%d) true goal(%v) all goals(%v)",
		c.index, c.TrueGoal(), c.goals)
}
