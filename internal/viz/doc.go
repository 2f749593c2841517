// Package viz renders rigid body simulations in the terminal.
//
//   - [Model]: Bubble Tea program that steps a world live
//   - [Canvas]: Braille-based pixel canvas
//   - [Camera]: orbit camera projecting world positions onto a canvas
//   - [Plot]: asciigraph line plot of one recorded column
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	Tab   - Select next body
//	←/→   - Orbit camera
//	+/-   - Zoom
//	Q     - Quit
package viz
