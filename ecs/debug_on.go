//go:build ecsdebug

package ecs

import "fmt"

const debugChecks = true

// poolTag remembers which component type a pool was initialized with.
type poolTag struct {
	key uint64
}

func (t *poolTag) set(key uint64) {
	t.key = key
}

func (t *poolTag) check(key uint64) {
	if t.key != key {
		panic(fmt.Sprintf("ecs: pool initialized for type key %#x accessed as %#x", t.key, key))
	}
}

func (t *poolTag) reset() {
	t.key = 0
}

func debugAssert(cond bool, msg string) {
	if !cond {
		panic("ecs: " + msg)
	}
}
