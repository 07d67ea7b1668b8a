package pointmass

import "testing"

func TestControlsGoalBounds(t *testing.T) {
	c := NewControls(5, 1)
	for i := 0; i < 200; i++ {
		for _, goal := range c.SampleGoal(nil) {
			for _, coord := range goal {
				if coord < GoalLow || coord > GoalHigh {
					t.Fatalf("goal coordinate %v outside [%v, %v]",
						coord, GoalLow, GoalHigh)
				}
			}
		}
	}
}

func TestControlsSampleTask(t *testing.T) {
	c := NewControls(3, 2)
	if c.Index() != 0 {
		t.Errorf("initial index %d (expected 0)", c.Index())
	}

	if _, err := c.SampleTask(3); err == nil {
		t.Error("expected range error for index == k")
	}
	if _, err := c.SampleTask(7); err == nil {
		t.Error("expected range error for index > k")
	}

	idx, err := c.SampleTask(2)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 2 || c.Index() != 2 {
		t.Errorf("index %d/%d (expected 2)", idx, c.Index())
	}
	if c.TrueGoal() != c.Goals()[2] {
		t.Error("true goal does not track the index")
	}

	for i := 0; i < 100; i++ {
		idx, err := c.SampleTask(-1)
		if err != nil {
			t.Fatal(err)
		}
		if idx < 0 || idx >= 3 {
			t.Fatalf("sampled index %d outside [0, 3)", idx)
		}
	}
}

func TestControlsIndexSurvivesResample(t *testing.T) {
	c := NewControls(4, 3)
	if _, err := c.SampleTask(3); err != nil {
		t.Fatal(err)
	}
	c.SampleGoal(nil)
	if c.Index() != 3 {
		t.Errorf("index %d after goal resample (expected 3)", c.Index())
	}
}
