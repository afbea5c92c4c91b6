package common

import "github.com/nspcc-dev/neo-go/pkg/interop/native/std"

const (
	major = 0
	minor = 1
	patch = 0

	// Version of the whole contract suite. Every contract returns it from
	// its version method and checks it on update.
	Version = major*1_000_000 + minor*1_000 + patch

	// ErrVersionMismatch is thrown by CheckVersion when updating from an
	// unexpectedly new deployment.
	ErrVersionMismatch = "previous version mismatch"

	// ErrAlreadyUpdated is thrown by CheckVersion if the current version
	// equals the version the contract is being updated from.
	ErrAlreadyUpdated = "contract is already of the latest version"
)

// CheckVersion checks the version a contract is being updated from.
func CheckVersion(from int) {
	if from > Version {
		panic(ErrVersionMismatch + ": expected <=" + std.Itoa(Version, 10))
	}
	if from == Version {
		panic(ErrAlreadyUpdated + ": " + std.Itoa(Version, 10))
	}
}

// AppendVersion appends the current contract version to the list of update
// arguments, so that _deploy of the new code can check what it migrates from.
func AppendVersion(data interface{}) []interface{} {
	if data == nil {
		return []interface{}{Version}
	}
	return append(data.([]interface{}), Version)
}
