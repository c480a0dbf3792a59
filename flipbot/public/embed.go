// Package public holds the browser page that posts manifests to the analyze
// endpoint.
package public

import "embed"

//go:embed index.html flipAnalyzer.js
var Files embed.FS
