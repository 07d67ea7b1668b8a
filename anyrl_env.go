package geworld

import (
	"fmt"

	"github.com/unixpickle/anyrl"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// FlatEnv adapts an Env to the anyrl.Env interface by
// dropping the Info mapping.
type FlatEnv struct {
	Env Env
}

var _ anyrl.Env = (*FlatEnv)(nil)

// Reset resets the wrapped environment.
func (f *FlatEnv) Reset() (anyvec.Vector, error) {
	return f.Env.Reset()
}

// Step takes a step in the wrapped environment.
func (f *FlatEnv) Step(action anyvec.Vector) (obs anyvec.Vector,
	reward float64, done bool, err error) {
	obs, reward, done, _, err = f.Env.Step(action)
	return
}

// FlatDictEnv adapts a DictEnv to the anyrl.Env interface
// by concatenating the listed observation components in
// order.
type FlatDictEnv struct {
	Env  DictEnv
	Keys []ObsKey
}

var _ anyrl.Env = (*FlatDictEnv)(nil)

// Reset resets the wrapped environment.
func (f *FlatDictEnv) Reset() (obs anyvec.Vector, err error) {
	defer essentials.AddCtxTo("reset dict env", &err)
	rawObs, err := f.Env.Reset()
	if err != nil {
		return
	}
	return f.flatten(rawObs)
}

// Step takes a step in the wrapped environment.
func (f *FlatDictEnv) Step(action anyvec.Vector) (obs anyvec.Vector,
	reward float64, done bool, err error) {
	defer essentials.AddCtxTo("step dict env", &err)
	rawObs, reward, done, _, err := f.Env.Step(action)
	if err != nil {
		return
	}
	obs, err = f.flatten(rawObs)
	return
}

func (f *FlatDictEnv) flatten(obs DictObs) (anyvec.Vector, error) {
	parts := make([]anyvec.Vector, 0, len(f.Keys))
	for _, key := range f.Keys {
		part, ok := obs[key]
		if !ok {
			return nil, fmt.Errorf("missing observation component: %q", key)
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("no observation components selected")
	}
	return parts[0].Creator().Concat(parts...), nil
}
