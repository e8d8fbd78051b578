// Package buildinfo exposes version metadata stamped at link time with
// -X github.com/campushq/campus-chatbot-go/internal/buildinfo.<Var>=<value>.
// The values stay empty in plain go-run builds.
package buildinfo

var (
	// Version is the release tag of this build.
	Version = ""

	// Commit is the git revision the binary was built from.
	Commit = ""

	// BuildDate is the RFC3339 timestamp of the build.
	BuildDate = ""
)
