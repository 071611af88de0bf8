package version

// Set with -ldflags "-X whilec/pkg/version.GitCommit=..." at release time.
var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)
