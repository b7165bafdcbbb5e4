// Package styles holds the colors and fill patterns of chord diagrams.
//
// Node colors come from an evenly spaced HLS palette unless given
// explicitly. Chords are filled with the color of their source node, or,
// when blending, with a gradient between both endpoint colors. Hatch
// patterns use the familiar one-character notation, where repeating a
// character makes the pattern denser:
//
//	-   horizontal lines     |   vertical lines
//	/   diagonal lines       \   back-diagonal lines
//	+   horizontal+vertical  x   both diagonals
//	.   dots
package styles
