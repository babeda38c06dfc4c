// Package cssbridge holds build metadata of the application.
package cssbridge

var (
	// Version of the application. Set by build flags.
	Version = "v0.1.0"

	// Build timestamp. Set by build flags.
	Build = "n/a"
)
