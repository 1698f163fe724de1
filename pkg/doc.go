// Package pkg provides the core libraries for flowlayout, a flow layout engine
// for sequences of rectangular boxes.
//
// # Overview
//
// flowlayout wraps boxes left to right into lines that fit a frame width,
// positions each line according to a gravity, and optionally reorders the
// sequence so fewer lines are needed. The pkg directory is organized into
// three main areas:
//
//  1. Domain logic ([flow], [flow/transform], [engine])
//  2. Inputs and outputs ([boxes], [render], [render/sink])
//  3. Orchestration and infrastructure ([pipeline], [cache], [adapter],
//     [watcher], [observability])
//
// # Architecture
//
// The typical data flow through flowlayout:
//
//	Box document (JSON, YAML, TOML)
//	         ↓
//	    [boxes] package (decode + validate)
//	         ↓
//	    [flow/transform] package (compress, align, truncate)
//	         ↓
//	    [flow] package (line building, measuring, placement)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
// Lay out a document and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/flowlayout/pkg/boxes"
//	    "github.com/matzehuels/flowlayout/pkg/engine"
//	    "github.com/matzehuels/flowlayout/pkg/flow"
//	    "github.com/matzehuels/flowlayout/pkg/render/sink"
//	)
//
//	doc, _ := boxes.ReadFile("tags.yaml")
//	e := engine.New(flow.Config{Gravity: flow.GravityCenter, Padding: doc.Padding})
//
//	// 1. Reorder to use fewer lines
//	items, _ := e.Compress(doc.Items(), e.Budget(doc.Width))
//
//	// 2. Compute placements
//	res, _ := e.Layout(items, doc.Width, flow.HeightSpec{})
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(res, sink.WithLabels())
//
// # Main Packages
//
// [flow] - Boxes, lines and placements. [flow.BuildLines] wraps greedily,
// [flow.Measure] reports the frame height, and [flow.Place] assigns
// rectangles.
//
// [flow/transform] - Reordering passes: knapsack compression, spacer
// alignment and line truncation.
//
// [engine] - Validating facade over flow and transform, shared by the CLI,
// the HTTP API and the [adapter] host.
//
// [pipeline] - Complete layout pipeline (decode → reflow → layout → render)
// with two cache tiers. Ensures consistent behavior across all entry points.
//
// [cache] - Cache backends: file (CLI), Redis (API) and null (disabled).
//
// [observability] - Hooks for engine, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...               # All tests
//	go test ./pkg/flow/...          # Specific package
//	go test -run Example ./pkg/...  # Examples only
//
// [flow]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/flow
// [flow/transform]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/flow/transform
// [engine]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/engine
// [boxes]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/boxes
// [render]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/cache
// [adapter]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/adapter
// [watcher]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/watcher
// [observability]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/observability
// [flow.BuildLines]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/flow#BuildLines
// [flow.Measure]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/flow#Measure
// [flow.Place]: https://pkg.go.dev/github.com/matzehuels/flowlayout/pkg/flow#Place
package pkg
