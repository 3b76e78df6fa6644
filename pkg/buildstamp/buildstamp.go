package buildstamp

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Set through -ldflags "-X go.jetpack.io/kubeauth/pkg/buildstamp.<Name>=<value>".
var (
	// User is the username of the account that built the binary.
	User string

	// Host is the unqualified hostname of the machine used to build the binary.
	Host string

	// BuildTimestamp is the timestamp at which the binary was built in ISO 8601
	// format.
	BuildTimestamp string

	// Commit is the git commit hash of the revision used to build the binary.
	Commit string

	// ReleaseTag is the tag of the revision used to build the binary as provided
	// by `git describe`. In general, it's something like: "a968903-dirty"
	ReleaseTag string

	// VersionNumber is the version number in semver format MAJOR.MINOR.PATCH
	VersionNumber = "0.0.0"

	// PrereleaseTag is usually "dev" for local builds and empty for releases.
	PrereleaseTag string
)

// Version returns a short version string of the form: 0.1.0-dev+379c1d11-dirty
func Version() string {
	if strings.TrimSpace(PrereleaseTag) == "" {
		return VersionNumber
	}
	v := VersionNumber + "-" + PrereleaseTag
	if ReleaseTag != "" {
		v += "+" + ReleaseTag
	}
	return v
}

// PrintVerboseVersion prints a verbose listing of the version variables
// to the io.Writer argument
func PrintVerboseVersion(w io.Writer) {
	fmt.Fprint(w, "\n")
	fmt.Fprintf(w, "Version Number: %v\n", VersionNumber)
	fmt.Fprintf(w, "Prerelease Tag: %v\n", PrereleaseTag)
	fmt.Fprintf(w, "Release:        %v\n", ReleaseTag)
	fmt.Fprintf(w, "Commit:         %v\n", Commit)
	fmt.Fprint(w, "\n")
	fmt.Fprintf(w, "Build Date:  %v\n", BuildTimestamp)
	fmt.Fprintf(w, "Built by:    %v@%v\n", User, Host)
	fmt.Fprintf(w, "Runtime:     %v\n", runtime.Version())
}
