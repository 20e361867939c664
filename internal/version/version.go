package version

// These variables are overridden at build time using -ldflags. The defaults
// cover local development builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)
