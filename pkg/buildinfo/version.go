// Package buildinfo carries the version stamp baked in at build time.
//
// Release builds inject the values with ldflags:
//
//	go build -ldflags "\
//	    -X github.com/lbartels/bionet/pkg/buildinfo.Version=$(git describe --tags) \
//	    -X github.com/lbartels/bionet/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/lbartels/bionet/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Plain `go build` leaves the dev defaults in place.
package buildinfo

import "fmt"

// Injected via ldflags; see the package doc.
var (
	// Version is the semantic version tag.
	Version = "dev"

	// Commit is the git revision the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String formats the stamp for logs and diagnostics.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template is the cobra version template, shown by `bionet --version`.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
