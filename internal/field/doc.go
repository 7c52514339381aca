// Package field generates the normalized habitat field.
//
// A field starts as uniform noise and is smoothed by repeated toroidal
// 5-point averaging, which produces large spatially correlated patches:
//
//   - [Generate]: noise, [Smooth] passes, then [Normalize]
//   - [NewSource]: the fixed PCG stream used for reproducible runs
//   - [NewEntropySource]: a non-reproducible stream
//
// # Example
//
//	f, err := field.Generate(512, 5, field.NewSource(42))
//
// # Determinism
//
// The same size, iteration count and seed always give a bit-identical
// field. Every call takes its own [rand.Source]; nothing is seeded
// globally.
package field
