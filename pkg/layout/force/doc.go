// Package force implements an incremental force-directed layout for 2D graphs.
//
// # Overview
//
// An [Engine] owns a collection of [Node] values and moves them one
// iteration at a time. Each [Engine.Step] runs the same passes in order:
//
//  1. Reset every displacement to zero
//  2. Repulsion k²/d between every ordered pair of nodes
//  3. Attraction d²/k along every adjacency entry, on both endpoints
//  4. Gravity toward the origin
//  5. Damping by Speed/32
//  6. Position update, skipped for pinned nodes
//
// The scale k is sqrt(AreaMultiplier*Area/(1+n)) and is recomputed whenever
// the node collection is replaced.
//
// # Usage
//
//	a, b := force.NewNode(0, force.Vec{X: 0}), force.NewNode(1, force.Vec{X: 10})
//	a.Connect(b)
//	e, err := force.New([]*force.Node{a, b}, nil)
//	if err != nil {
//	    return err
//	}
//	for i := 0; i < e.Config().Iterations; i++ {
//	    e.Step()
//	}
//
// # Update Modes
//
// [UpdateScaled] is the default and matches the tuned behaviour: the damped
// displacement is multiplied by min(|disp|, cap), so a step can exceed the
// cap. [UpdateCapped] normalizes first and never moves a node further than
// [Config.StepCap].
//
// # Gravity Modes
//
// [GravityIndex] scales gravity by the node's position in the collection, so
// reordering nodes changes the result. [GravityUniform] uses one factor for
// all nodes.
//
// # Concurrency
//
// An Engine is single-threaded. Hosts that step on a timer and accept input
// from another goroutine must hold a lock around both; see the sim and
// server packages.
package force
