// Package kinsim provides a crude kinematic stand-in for a
// physics simulator.
//
// Controls are integrated as joint velocities, there are no
// contacts or limits, and rendering produces a synthetic
// state-dependent pattern rather than a rasterized scene.
// It exists so the environments can be exercised in tests
// and examples without a real physics engine.
package kinsim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const dt = 0.01

// Sim is an in-process kinematic simulator.
type Sim struct {
	qpos []float64
	qvel []float64

	initQPos []float64
	initQVel []float64

	// driven is the number of leading position slots moved
	// by control; the trailing slots hold goal encodings
	// and only change through SetState.
	driven int

	// bodies maps a body name to the two position slots
	// holding its planar center of mass.
	bodies map[string][2]int
}

// New creates a scene with nq position slots, the first
// driven of which respond to control.
func New(nq, driven int, bodies map[string][2]int) *Sim {
	return &Sim{
		qpos:     make([]float64, nq),
		qvel:     make([]float64, nq),
		initQPos: make([]float64, nq),
		initQVel: make([]float64, nq),
		driven:   driven,
		bodies:   bodies,
	}
}

// NewPointMass returns the point-mass scene: a planar mass
// in the first two slots and a static goal body in the last
// two.
func NewPointMass() *Sim {
	return New(4, 2, map[string][2]int{
		"object": {0, 1},
		"goal":   {2, 3},
	})
}

// NewPeg returns the peg scene: three arm joints plus the
// slot offset. The four-dimensional control drives the
// joints; the slot component is ignored by the integrator.
func NewPeg() *Sim {
	return New(4, 3, nil)
}

// QPos returns a copy of the joint positions.
func (s *Sim) QPos() []float64 {
	return append([]float64{}, s.qpos...)
}

// QVel returns a copy of the joint velocities.
func (s *Sim) QVel() []float64 {
	return append([]float64{}, s.qvel...)
}

// InitQPos returns the positions the scene was created
// with.
func (s *Sim) InitQPos() []float64 {
	return append([]float64{}, s.initQPos...)
}

// InitQVel returns the velocities the scene was created
// with.
func (s *Sim) InitQVel() []float64 {
	return append([]float64{}, s.initQVel...)
}

// SetState overwrites the joint positions and velocities.
func (s *Sim) SetState(qpos, qvel []float64) error {
	if len(qpos) != len(s.qpos) {
		return fmt.Errorf("set state: have %d position slots, want %d",
			len(qpos), len(s.qpos))
	}
	if len(qvel) != len(s.qvel) {
		return fmt.Errorf("set state: have %d velocity slots, want %d",
			len(qvel), len(s.qvel))
	}
	copy(s.qpos, qpos)
	copy(s.qvel, qvel)
	return nil
}

// Advance treats the control vector as joint velocities and
// integrates the driven slots for nSubsteps steps.
func (s *Sim) Advance(control []float64, nSubsteps int) error {
	if len(control) < s.driven {
		return fmt.Errorf("advance: have %d controls, want at least %d",
			len(control), s.driven)
	}
	for i := 0; i < nSubsteps; i++ {
		for d := 0; d < s.driven; d++ {
			s.qpos[d] += control[d] * dt
			s.qvel[d] = control[d]
		}
	}
	return nil
}

// BodyCOM returns the planar center of mass of a named body
// with a zero z component.
func (s *Sim) BodyCOM(name string) ([]float64, error) {
	slots, ok := s.bodies[name]
	if !ok {
		return nil, fmt.Errorf("body com: unknown body %q", name)
	}
	return []float64{s.qpos[slots[0]], s.qpos[slots[1]], 0}, nil
}

// RenderGrey produces a deterministic synthetic frame whose
// pattern depends on the current positions.
func (s *Sim) RenderGrey(width, height int) ([]uint8, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: bad dimensions %dx%d", width, height)
	}
	phase := floats.Sum(s.qpos)
	buf := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := math.Sin(float64(x)*0.37 + float64(y)*0.73 + phase)
			buf[y*width+x] = uint8((v + 1) * 127.5)
		}
	}
	return buf, nil
}
