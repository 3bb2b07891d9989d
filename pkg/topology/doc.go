// Package topology builds node collections for the layout engine.
//
// Generators return nodes at the origin with ids 0..n-1 in iteration order.
// Positions are assigned afterwards by a strategy from the place package, so
// the same topology can be seeded many ways. [Demo] is the fixed 17-node
// graph used by examples and tests; [Parse] turns short descriptions like
// "grid:4x3" into graphs for the command line.
package topology
