//go:build !linux || !cgo

package gpu

// vulkanAvailable is false on every non-Linux or non-cgo build.
func vulkanAvailable() bool {
	return false
}
