package gpu

// MetalAvailable reports whether this binary was built in a configuration
// where internal/gpu/metal can link and drive a real Metal device (darwin,
// cgo). It is a link-time fact, not a runtime device check — a Driver's
// own Init still fails if no Metal device is present.
func MetalAvailable() bool { return metalAvailable() }

// VulkanAvailable reports whether this binary was built in a
// configuration where internal/gpu/vulkan can link the system Vulkan
// loader (linux, cgo). Like MetalAvailable, this is a link-time fact.
func VulkanAvailable() bool { return vulkanAvailable() }

// Probe returns a best-effort Capability for every backend this binary
// could in principle dispatch to, without constructing or Init-ing any
// Driver. Scalar and SIMD are always available (pure Go); Metal/Vulkan
// report Available based on build configuration only, so a reported GPU
// backend can still fail its Init. cmd/gofind does not call Probe: it
// Inits every driver directly and passes the resulting Capabilities to
// the selector.
func Probe() []Capability {
	caps := []Capability{
		{Backend: BackendScalar, Available: true},
		{Backend: BackendSIMD, Available: true},
	}
	if MetalAvailable() {
		caps = append(caps, Capability{
			Backend:         BackendMetal,
			Available:       true,
			UnifiedMemory:   true,
			HighPerformance: true,
		})
	}
	if VulkanAvailable() {
		caps = append(caps, Capability{
			Backend:         BackendVulkan,
			Available:       true,
			HighPerformance: true,
		})
	}
	return caps
}
