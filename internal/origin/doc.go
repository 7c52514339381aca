// Package origin runs the sparse-origin model: it generates a habitat
// field, thresholds it into an eligibility mask and samples origins
// inside the eligible region.
//
//   - [Model]: wraps a config and runs the pipeline
//   - [Result]: immutable record of one run
//   - [Renderer]: display collaborator, see [Display]
//
// # Example
//
//	m := origin.New(config.DefaultConfig())
//	res, err := m.Run()
//	...
//	err = origin.Display(res, viz.NewTerminal(os.Stdout))
//
// # Thread Safety
//
// Model instances are NOT thread-safe. Results are read-only and may be
// shared once returned.
package origin
