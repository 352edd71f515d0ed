package params

import "fmt"

const (
	VersionMajor = 0 // Major version component of the current release
	VersionMinor = 3 // Minor version component of the current release
	VersionPatch = 1 // Patch version component of the current release
)

var Version = func() string {
	return fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}()
