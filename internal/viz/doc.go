// Package viz renders finished runs in the terminal.
//
//   - [Terminal]: three-panel display of field, eligible mask and origins
//   - [Canvas]: Braille dot canvas used for the origin scatter
//   - [Colormap]: linear color ramps for scalar heatmaps
//
// Output goes to an [io.Writer]; nothing is written to disk. Colors are
// dropped automatically when the writer is not a terminal.
package viz
