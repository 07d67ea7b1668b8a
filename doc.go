// Package geworld defines small 2D manipulation
// environments (point-mass reaching and peg insertion) on
// top of a pluggable physics simulator.
//
// The environments themselves live in the pointmass and
// peg2d sub-packages. This package provides the pieces they
// share: the environment interfaces, space declarations,
// discrete action tables, the simulator contract, and an id
// registry binding preset configurations to constructors.
package geworld
