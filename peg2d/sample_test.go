package peg2d

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func TestGoodGoal(t *testing.T) {
	cases := []struct {
		goal float64
		good bool
	}{
		{0, true},
		{0.25, true},
		{-0.25, true},
		{0.26, false},
		{-0.26, false},
		{1, false},
	}
	for _, c := range cases {
		if GoodGoal(c.goal) != c.good {
			t.Errorf("GoodGoal(%v) = %v (expected %v)", c.goal, !c.good, c.good)
		}
	}
}

func TestGoalSamplerBounds(t *testing.T) {
	s := &goalSampler{low: -0.02, high: 0.02, rng: rand.New(rand.NewSource(1))}
	for i := 0; i < 1000; i++ {
		goal, err := s.Sample()
		if err != nil {
			t.Fatal(err)
		}
		if !GoodGoal(goal) {
			t.Fatalf("sampled goal %v fails the predicate", goal)
		}
		if goal < -0.02 || goal > 0.02 {
			t.Fatalf("sampled goal %v outside the draw range", goal)
		}
	}
}

func TestGoalSamplerDegenerateRange(t *testing.T) {
	// Every candidate in this range fails GoodGoal, so the
	// sampler must give up instead of spinning.
	s := &goalSampler{low: 0.3, high: 0.4, rng: rand.New(rand.NewSource(1))}
	if _, err := s.Sample(); err == nil {
		t.Error("expected an error for a range outside the predicate")
	}
}

func TestStateSampler(t *testing.T) {
	s := &stateSampler{rng: rand.New(rand.NewSource(2))}
	for i := 0; i < 1000; i++ {
		state, err := s.Sample()
		if err != nil {
			t.Fatal(err)
		}
		if len(state) != 3 {
			t.Fatalf("state length %d (expected 3)", len(state))
		}
		if !GoodState(state) {
			t.Fatalf("sampled state %v fails the predicate", state)
		}
		if state[0] <= -math.Pi/2 || state[0] >= math.Pi/2 {
			t.Fatalf("first joint %v outside (-pi/2, pi/2)", state[0])
		}

		// The second joint folds back against the first by
		// the spread amount, so sign(j0)*(j0+j1) recovers
		// the negated spread.
		folded := sign(state[0]) * (state[0] + state[1])
		if folded > 1e-9 || folded < -math.Pi/2-1e-9 {
			t.Fatalf("fold %v outside [-pi/2, 0] for state %v", folded, state)
		}
	}
}
