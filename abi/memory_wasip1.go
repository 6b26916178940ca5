//go:build wasip1

package abi

import (
	"bytes"
	"unsafe"
)

// pinned keeps the buffers handed to the host reachable until the host reports what it wrote
// into them. The module runs on a single thread, so no lock is taken.
var pinned = make(map[uint32][]byte)

// proxyOnMemoryAllocate is how the host obtains guest memory for the data it returns.
//
//go:wasmexport proxy_on_memory_allocate
func proxyOnMemoryAllocate(size uint32) uint32 {
	if size == 0 {
		size = 1
	}
	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	pinned[ptr] = buf
	return ptr
}

// takeBytes returns the size bytes the host wrote at ptr and unpins them.
func takeBytes(ptr, size uint32) []byte {
	if ptr == 0 {
		return nil
	}
	if buf, ok := pinned[ptr]; ok {
		delete(pinned, ptr)
		if int(size) > len(buf) {
			size = uint32(len(buf))
		}
		return buf[:size:size]
	}
	return bytes.Clone(unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), size))
}

func bytesPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

func stringPtr(s string) unsafe.Pointer {
	if s == "" {
		return nil
	}
	return unsafe.Pointer(unsafe.StringData(s))
}
