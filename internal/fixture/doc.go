// Package fixture turns declarative light-emitting shapes (strips,
// grids, arcs) into positioned point sets and protocol encoders.
//
// A Fixture owns a mutable pool of local points, positioned through a
// fixed parent-relative transform stack, and exactly one output
// protocol configuration. Two disjoint parameter classes drive two
// regeneration paths: metrics parameters change the point count and
// force the owning structure to reindex every fixture, while geometry
// parameters only move existing points and take the cheap path.
package fixture
