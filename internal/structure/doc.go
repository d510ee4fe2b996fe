// Package structure orchestrates a set of fixtures into one live model.
//
// A Structure owns an ordered fixture list and the root model built from
// their promoted points. It listens for fixture regeneration events and
// keeps the model consistent:
//   - Metrics changes (point counts changed) rebuild the whole model with
//     contiguous global indices.
//   - Geometry changes (positions only) push fresh coordinates into the
//     existing model points and renormalise in place.
//
// Bulk loading batches additions so a project with many fixtures rebuilds
// the model once rather than once per fixture. A static model can be
// swapped in for pre-baked layouts; while one is set, the fixture list is
// frozen.
package structure
