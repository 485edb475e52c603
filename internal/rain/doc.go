// Package rain implements the digital rain simulation: which glyph each cell
// of a character grid shows, and in what colour, at a given elapsed time.
//
// The package is built from small pieces that the [Compositor] ties together:
//
//   - [Catalog]: immutable set of candidate glyphs
//   - [Tracker]: per-column drop bookkeeping (active head plus fading trails)
//   - [Spawner]: randomized, gated creation of new drops
//   - [Decay]: intensity of a trail cell as a function of its age
//   - [Compositor]: produces a full [Grid] once per frame
//
// # Example
//
//	comp := rain.NewCompositor(rain.PIqaD(), rand.New(rand.NewSource(1)))
//	grid := comp.Compose(rain.DefaultSettings(), time.Since(start), 80, 24)
//	for row := 0; row < grid.Height; row++ {
//		for _, cell := range grid.Row(row) {
//			_ = cell.Glyph
//		}
//	}
//
// # Thread Safety
//
// A Compositor owns its Tracker and is NOT thread-safe. Columns never share
// mutable state, so callers that want to parallelize may split work by column
// using separate Trackers. Catalogs are read-only and safe to share.
package rain
