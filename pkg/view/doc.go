// Package view maps between layout and screen coordinates and turns pointer
// gestures into engine calls.
//
// [Transform] holds the zoom and pan of a viewport. [HitTest] finds the node
// under a screen point. [Drag] implements the press, move, release cycle:
// the node under the pointer is pinned for the length of the gesture so the
// simulation does not fight the user, and unpinned on release or cancel.
package view
