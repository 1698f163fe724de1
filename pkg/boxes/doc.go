// Package boxes reads and writes box documents: a frame width, container
// padding and an ordered list of boxes, stored as JSON, TOML or YAML.
//
// The format is chosen from the file extension:
//
//	.json         JSON (also the default for stdin/stdout)
//	.toml         TOML
//	.yaml, .yml   YAML
//
// A document may also list plain text labels. Labels are turned into boxes
// sized by their display width (see [FromLabels]), which is how tag clouds
// are usually described:
//
//	width = 320
//	labels = ["go", "layout", "knapsack", "東京"]
package boxes
