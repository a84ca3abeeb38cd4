package trinomial

import _ "embed"

// Version is the release version, read from the VERSION file.
//
//go:embed VERSION
var Version string
