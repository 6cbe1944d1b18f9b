// Package synchronizer keeps a set of target viewports consistent with the
// trigger events fired by a set of source viewports.
//
// A Synchronizer owns two ordered viewport sets. Sources are observed for a
// configurable list of trigger events; when one fires, the active Handler is
// invoked once per (source, target) pair with the registration index of each
// viewport. Handlers apply their result through the synchronizer's
// DisplayImage and SetViewport, so the display changes they cause are never
// observed as new triggers.
//
// Fan-out rounds, display mutations and handler resets of one synchronizer run
// one at a time through its mailbox. The context passed to that work is
// marked with the synchronizer, and runtime events delivered with a marked
// context are recognized as its own. Events from any other origin, including
// user interaction on other goroutines, wait their turn and are fanned out.
//
// The synchronizer also precomputes a sparse table of patient-space offsets
// between the images displayed in sources and targets, and follows the
// runtime's "viewport disabled" notification to drop viewports that go away.
package synchronizer
