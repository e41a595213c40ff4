package version

// Name identifies the service in logs, traces, and metrics.
const Name = "benchmate-api"

// Version is overridden at build time via -ldflags.
var Version = "dev"
