package ecs

import "unsafe"

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// typeKey returns the address of the runtime type descriptor of *T. It is
// unique per type and stable for the life of the process.
func typeKey[T any]() uint64 {
	var probe any = (*T)(nil)
	return uint64(uintptr((*iface)(unsafe.Pointer(&probe)).typ))
}
