package ecs_test

import (
	"testing"

	"github.com/plus3/libecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseSetEmplaceGet(t *testing.T) {
	set := ecs.NewSparseSet[Position]()

	for _, id := range []uint32{0, 7, 3, 100} {
		ptr := set.Emplace(id, Position{X: float32(id), Y: -float32(id)})
		require.NotNil(t, ptr)
		assert.True(t, set.Contains(id))
		assert.Equal(t, Position{X: float32(id), Y: -float32(id)}, *set.Get(id))
	}

	assert.Equal(t, 4, set.Len())
	assert.False(t, set.Contains(1))
	assert.False(t, set.Contains(99))
	assert.False(t, set.Contains(1000))
}

func TestSparseSetEmplaceIsIdempotent(t *testing.T) {
	set := ecs.NewSparseSet[Health]()

	first := set.Emplace(5, Health{Current: 10, Max: 10})
	second := set.Emplace(5, Health{Current: 99, Max: 99})

	assert.Same(t, first, second)
	assert.Equal(t, Health{Current: 10, Max: 10}, *set.Get(5))
	assert.Equal(t, 1, set.Len())
}

func TestSparseSetRemove(t *testing.T) {
	set := ecs.NewSparseSet[Name]()
	set.Emplace(1, Name{Value: "one"})
	set.Emplace(2, Name{Value: "two"})
	set.Emplace(3, Name{Value: "three"})

	set.Remove(2)

	assert.Equal(t, 2, set.Len())
	assert.False(t, set.Contains(2))
	assert.ElementsMatch(t, []uint32{1, 3}, set.Entities())
	assert.Equal(t, "one", set.Get(1).Value)
	assert.Equal(t, "three", set.Get(3).Value)
}

func TestSparseSetRemoveLast(t *testing.T) {
	set := ecs.NewSparseSet[Score]()
	set.Emplace(4, 40)
	set.Emplace(9, 90)

	set.Remove(9)
	assert.Equal(t, []uint32{4}, set.Entities())
	assert.Equal(t, Score(40), *set.Get(4))

	set.Remove(4)
	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.Entities())
	assert.False(t, set.Contains(4))
}

func TestSparseSetInvariants(t *testing.T) {
	set := ecs.NewSparseSet[int]()
	for id := uint32(0); id < 64; id++ {
		set.Emplace(id, int(id)*10)
	}
	for id := uint32(0); id < 64; id += 3 {
		set.Remove(id)
	}
	for id := uint32(1); id < 64; id += 6 {
		set.Emplace(id, -1)
	}

	entities := set.Entities()
	values := set.Values()
	require.Equal(t, set.Len(), len(entities))
	require.Equal(t, set.Len(), len(values))

	for i, id := range entities {
		assert.True(t, set.Contains(id))
		assert.Same(t, &values[i], set.Get(id))
		assert.Equal(t, int(id)*10, values[i])
	}

	for id := uint32(0); id < 64; id++ {
		assert.Equal(t, id%3 != 0, set.Contains(id), "id %d", id)
	}
}

func TestSparseSetReinsertAfterRemove(t *testing.T) {
	set := ecs.NewSparseSet[Tag]()
	set.Emplace(2, "first")
	set.Remove(2)
	set.Emplace(2, "second")

	assert.True(t, set.Contains(2))
	assert.Equal(t, Tag("second"), *set.Get(2))
	assert.Equal(t, 1, set.Len())
}

func TestSparseSetAll(t *testing.T) {
	set := ecs.NewSparseSet[Velocity]()
	set.Emplace(1, Velocity{DX: 1})
	set.Emplace(2, Velocity{DX: 2})
	set.Emplace(3, Velocity{DX: 3})

	seen := map[uint32]float32{}
	for id, v := range set.All() {
		seen[id] = v.DX
		v.DY = 7
	}
	assert.Equal(t, map[uint32]float32{1: 1, 2: 2, 3: 3}, seen)
	assert.Equal(t, float32(7), set.Get(2).DY)

	count := 0
	for range set.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestSparseSetZeroSizedComponent(t *testing.T) {
	set := ecs.NewSparseSet[PlayerController]()
	set.Emplace(3, PlayerController{})
	set.Emplace(8, PlayerController{})
	set.Remove(3)

	assert.Equal(t, 1, set.Len())
	assert.True(t, set.Contains(8))
	assert.False(t, set.Contains(3))
}
