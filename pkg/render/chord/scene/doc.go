// Package scene turns a chord layout into the primitives every sink draws.
//
// [Compose] resolves styling once: node colors, chord fills, edges and
// hatches, the blended color fields, label placement and the mapping from
// world coordinates to pixels. The SVG and PNG sinks then only walk a
// [Scene] in order:
//
//  1. node arcs
//  2. the base disc, which hides the inner half of every arc band
//  3. chords, each with its color field (if any) below its outline
//  4. labels
//
// Geometry stays in world coordinates (y-up, radians). Stroke widths and
// font sizes are in pixels, since they should not grow with the radius.
package scene
