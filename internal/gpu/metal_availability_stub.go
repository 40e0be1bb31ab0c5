//go:build !darwin || !cgo

package gpu

// metalAvailable is false on every non-Darwin or non-cgo build.
func metalAvailable() bool {
	return false
}
