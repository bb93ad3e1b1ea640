// Package composite synthesizes box art by layering a game logo over a
// background image.
//
// Layout: the canvas (600x900 by default) is covered by the background,
// scaled and center-cropped. The logo keeps its aspect ratio inside a box
// 80% of the canvas width and 30% of its height, centered horizontally with
// its center at 75% of the canvas height, and is alpha-blended over the
// background. The result is encoded as PNG.
package composite
