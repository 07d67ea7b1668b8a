package geworld

import "github.com/unixpickle/anyvec"

// MaxStepsEnv wraps an Env and ends episodes early if they
// run longer than MaxSteps timesteps.
type MaxStepsEnv struct {
	Env
	MaxSteps int

	steps int
}

// Reset resets the environment.
func (m *MaxStepsEnv) Reset() (anyvec.Vector, error) {
	m.steps = 0
	return m.Env.Reset()
}

// Step takes a step in the environment.
func (m *MaxStepsEnv) Step(action anyvec.Vector) (anyvec.Vector, float64,
	bool, Info, error) {
	obs, rew, done, info, err := m.Env.Step(action)
	m.steps++
	if m.steps == m.MaxSteps {
		done = true
	}
	return obs, rew, done, info, err
}

// MaxStepsDictEnv is MaxStepsEnv for keyed-observation
// environments.
type MaxStepsDictEnv struct {
	DictEnv
	MaxSteps int

	steps int
}

// Reset resets the environment.
func (m *MaxStepsDictEnv) Reset() (DictObs, error) {
	m.steps = 0
	return m.DictEnv.Reset()
}

// Step takes a step in the environment.
func (m *MaxStepsDictEnv) Step(action anyvec.Vector) (DictObs, float64,
	bool, Info, error) {
	obs, rew, done, info, err := m.DictEnv.Step(action)
	m.steps++
	if m.steps == m.MaxSteps {
		done = true
	}
	return obs, rew, done, info, err
}
