package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via ldflags at release time
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Short returns the version, falling back to the module version recorded
// by `go install` when no ldflags were given
func Short() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return Version
}

// Info returns the version line printed by `clarity version`
func Info(ruleSet string) string {
	return fmt.Sprintf("clarity %s (%s) built on %s with %s, rules %q",
		Short(), Commit, Date, runtime.Version(), ruleSet)
}
