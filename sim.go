package geworld

// A Sim is a physics simulator that owns the joint state of
// a scene.
//
// The surface matches a MuJoCo-style simulator: joint
// positions and velocities are readable and settable as
// flat vectors, Advance applies a control vector for a
// number of substeps, named bodies expose their center of
// mass, and the scene can be rendered off-screen into a
// greyscale pixel buffer.
//
// Environments read and overwrite slices of the state (the
// trailing position slots are reserved for goal encodings)
// but never integrate physics themselves.
type Sim interface {
	// QPos returns a copy of the joint positions.
	QPos() []float64

	// QVel returns a copy of the joint velocities.
	QVel() []float64

	// InitQPos returns the joint positions the scene was
	// loaded with.
	InitQPos() []float64

	// InitQVel returns the joint velocities the scene was
	// loaded with.
	InitQVel() []float64

	// SetState overwrites the joint positions and
	// velocities.
	SetState(qpos, qvel []float64) error

	// Advance applies the control vector for nSubsteps
	// physics steps.
	Advance(control []float64, nSubsteps int) error

	// BodyCOM returns the world center of mass (x, y, z) of
	// a named body.
	BodyCOM(name string) ([]float64, error)

	// RenderGrey renders the scene off-screen into a
	// row-major width*height greyscale buffer.
	RenderGrey(width, height int) ([]uint8, error)
}
