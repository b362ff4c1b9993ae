// Package gui provides the flowgui node kinds: the GUI root, the structural
// containers (panels, windows, areas, scopes, indentation) and the leaf
// widgets drawing into them.
//
// The root publishes two variables to its contents. GUI.Root holds the
// shared *surface.Handle and UI.Parents the *surface.Stack of active
// surfaces. Containers push their child surface for the duration of their
// contents' activation; leaves draw into the innermost one and fail with a
// NoActiveSurface error when there is none.
//
// Peripheral panels are always handled before the central one, in the same
// order for compose, warmup, activation and cleanup. Absent slots receive
// no calls at all.
package gui
