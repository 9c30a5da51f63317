//go:build !ecsdebug

package ecs

const debugChecks = false

type poolTag struct{}

func (*poolTag) set(uint64)   {}
func (*poolTag) check(uint64) {}
func (*poolTag) reset()       {}

func debugAssert(bool, string) {}
