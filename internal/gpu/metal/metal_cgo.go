//go:build darwin && cgo

package metal

/*
#cgo darwin CFLAGS: -fobjc-arc
#cgo darwin LDFLAGS: -framework Metal -framework Foundation
#include <stdlib.h>
#include "shim.h"
*/
import "C"

import (
	"context"
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/gofind/gofind/internal/fsmatch"
	"github.com/gofind/gofind/internal/gpu"
	"github.com/gofind/gofind/internal/regex"
)

// Driver is the Darwin/Metal backend. It owns one MTLDevice and the two
// compiled pipeline states (names, regex), created lazily on first use
// from the kernel source in kernel.go.
type Driver struct {
	dev *C.gofind_metal_device
}

// New constructs a Metal Driver. Init must be called before use.
func New() *Driver { return &Driver{} }

func (d *Driver) Init(ctx context.Context) error {
	dev := C.gofind_metal_open()
	if dev == nil {
		return fmt.Errorf("metal: no system default device")
	}
	d.dev = dev
	return nil
}

func (d *Driver) Capability() gpu.Capability {
	if d.dev == nil {
		return gpu.Capability{Backend: gpu.BackendMetal, Available: false}
	}
	return gpu.Capability{
		Backend:             gpu.BackendMetal,
		Available:           true,
		MaxWorkgroupThreads: uint32(C.gofind_metal_max_threads(d.dev)),
		MaxBufferBytes:      uint64(C.gofind_metal_max_buffer_bytes(d.dev)),
		UnifiedMemory:       true,
		HighPerformance:     true,
	}
}

func (d *Driver) MatchNames(ctx context.Context, pattern []byte, opts fsmatch.Options, batch *fsmatch.Batch) (fsmatch.Results, error) {
	if d.dev == nil {
		return fsmatch.Results{}, fmt.Errorf("metal: driver not initialized")
	}
	cfg := make([]byte, 20)
	binary.LittleEndian.PutUint32(cfg[0:], uint32(batch.Len()))
	binary.LittleEndian.PutUint32(cfg[4:], uint32(len(pattern)))
	binary.LittleEndian.PutUint32(cfg[8:], boolU32(opts.Has(fsmatch.MatchPath)))
	binary.LittleEndian.PutUint32(cfg[12:], boolU32(opts.Has(fsmatch.CaseInsensitive)))
	binary.LittleEndian.PutUint32(cfg[16:], boolU32(opts.Has(fsmatch.Period)))

	results := make([]byte, batch.Len())
	var matchCount C.uint

	src := C.CString(matchNamesKernelSource)
	defer C.free(unsafe.Pointer(src))

	rc := C.gofind_metal_dispatch_names(d.dev, src,
		unsafe.Pointer(&cfg[0]), C.ulong(len(cfg)),
		ptrOrNil(pattern), C.ulong(len(pattern)),
		ptrOrNil(batch.NamesData), C.ulong(len(batch.NamesData)),
		(*C.uint)(unsafe.Pointer(&batch.Offsets[0])), (*C.uint)(unsafe.Pointer(&batch.Lengths[0])), C.uint(batch.Len()),
		(*C.uchar)(unsafe.Pointer(&results[0])), &matchCount)
	if rc != 0 {
		return fsmatch.Results{}, fmt.Errorf("metal: dispatch failed (code %d)", rc)
	}

	return decodeResults(results, uint32(matchCount)), nil
}

func (d *Driver) MatchRegex(ctx context.Context, prog *regex.Program, batch *fsmatch.Batch) (fsmatch.Results, error) {
	if d.dev == nil {
		return fsmatch.Results{}, fmt.Errorf("metal: driver not initialized")
	}
	states := prog.EncodeStates()
	bitmaps := prog.EncodeBitmaps()

	cfg := make([]byte, 16)
	binary.LittleEndian.PutUint32(cfg[0:], uint32(batch.Len()))
	binary.LittleEndian.PutUint32(cfg[4:], uint32(prog.NumStates))
	binary.LittleEndian.PutUint32(cfg[8:], uint32(prog.StartState))
	binary.LittleEndian.PutUint32(cfg[12:], prog.Flags)

	results := make([]byte, batch.Len())
	var matchCount C.uint

	src := C.CString(regexMatchKernelSource)
	defer C.free(unsafe.Pointer(src))

	rc := C.gofind_metal_dispatch_regex(d.dev, src,
		unsafe.Pointer(&cfg[0]), C.ulong(len(cfg)),
		ptrOrNil(states), C.ulong(len(states)),
		ptrOrNil(bitmaps), C.ulong(len(bitmaps)),
		ptrOrNil(batch.NamesData), C.ulong(len(batch.NamesData)),
		(*C.uint)(unsafe.Pointer(&batch.Offsets[0])), (*C.uint)(unsafe.Pointer(&batch.Lengths[0])), C.uint(batch.Len()),
		(*C.uchar)(unsafe.Pointer(&results[0])), &matchCount)
	if rc != 0 {
		return fsmatch.Results{}, fmt.Errorf("metal: regex dispatch failed (code %d)", rc)
	}

	return decodeResults(results, uint32(matchCount)), nil
}

func (d *Driver) Close() error {
	if d.dev != nil {
		C.gofind_metal_close(d.dev)
		d.dev = nil
	}
	return nil
}

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func ptrOrNil(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

func decodeResults(raw []byte, matchCount uint32) fsmatch.Results {
	res := fsmatch.Results{Records: make([]fsmatch.Result, len(raw)), MatchCount: matchCount}
	for i, v := range raw {
		res.Records[i] = fsmatch.Result{NameIdx: uint32(i), Matched: v != 0}
	}
	return res
}
