package geworld

import (
	"fmt"
	"sort"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// An EnvMaker constructs an environment over a simulator.
type EnvMaker func(c anyvec.Creator, s Sim) (Env, error)

// A DictEnvMaker constructs a keyed-observation environment
// over a simulator.
type DictEnvMaker func(c anyvec.Creator, s Sim) (DictEnv, error)

type envEntry struct {
	maxSteps int
	maker    EnvMaker
}

type dictEnvEntry struct {
	maxSteps int
	maker    DictEnvMaker
}

var envRegistry = map[string]envEntry{}
var dictEnvRegistry = map[string]dictEnvEntry{}

// Register binds an environment id to a constructor preset
// and an episode step cap. A non-positive cap disables the
// cap. Register panics if the id is already taken.
func Register(id string, maxSteps int, maker EnvMaker) {
	if _, ok := envRegistry[id]; ok {
		panic("environment id registered twice: " + id)
	}
	envRegistry[id] = envEntry{maxSteps: maxSteps, maker: maker}
}

// RegisterDict is Register for keyed-observation
// environments.
func RegisterDict(id string, maxSteps int, maker DictEnvMaker) {
	if _, ok := dictEnvRegistry[id]; ok {
		panic("environment id registered twice: " + id)
	}
	dictEnvRegistry[id] = dictEnvEntry{maxSteps: maxSteps, maker: maker}
}

// Make instantiates a registered environment over the given
// simulator, wrapping it with the registered step cap.
func Make(id string, c anyvec.Creator, s Sim) (Env, error) {
	entry, ok := envRegistry[id]
	if !ok {
		return nil, fmt.Errorf("make environment: unknown id %q", id)
	}
	env, err := entry.maker(c, s)
	if err != nil {
		return nil, essentials.AddCtx("make environment", err)
	}
	if entry.maxSteps > 0 {
		env = &MaxStepsEnv{Env: env, MaxSteps: entry.maxSteps}
	}
	return env, nil
}

// MakeDict is Make for keyed-observation environments.
func MakeDict(id string, c anyvec.Creator, s Sim) (DictEnv, error) {
	entry, ok := dictEnvRegistry[id]
	if !ok {
		return nil, fmt.Errorf("make environment: unknown id %q", id)
	}
	env, err := entry.maker(c, s)
	if err != nil {
		return nil, essentials.AddCtx("make environment", err)
	}
	if entry.maxSteps > 0 {
		env = &MaxStepsDictEnv{DictEnv: env, MaxSteps: entry.maxSteps}
	}
	return env, nil
}

// IDs lists every registered environment id, sorted.
func IDs() []string {
	var res []string
	for id := range envRegistry {
		res = append(res, id)
	}
	for id := range dictEnvRegistry {
		res = append(res, id)
	}
	sort.Strings(res)
	return res
}
