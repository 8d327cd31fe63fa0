// ABOUTME: Version constants for the audio library
// ABOUTME: Single source of truth for the reported version string

package version

const (
	// Version is the library version string.
	Version = "0.1.0"

	// Product is the product name reported by the demo tooling.
	Product = "SpaceAudio"

	// Manufacturer identifies who ships the library.
	Manufacturer = "SpacemiT Robotics"
)
