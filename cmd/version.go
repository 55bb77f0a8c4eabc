// Package cmd holds the version reported by the jobtrace binaries.
package cmd

var version = "dev"

// SetVersion records the version injected by the build.
func SetVersion(v string) {
	version = v
}

// GetVersion returns the recorded version.
func GetVersion() string {
	return version
}
