package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/constraints"
	"pgregory.net/rapid"
)

type testFlag uint8

const (
	flag1 testFlag = 1 << iota
	flag2
	flag3
)

func (f testFlag) String() string {
	switch f {
	case flag1:
		return "Flag1"
	case flag2:
		return "Flag2"
	case flag3:
		return "Flag3"
	}
	return "unknown"
}

type otherFlag uint8

func TestFlagsConstructor(t *testing.T) {
	t.Parallel()

	var f1 Flags[testFlag]
	require.Equal(t, Flags[testFlag]{}, f1)
	require.Equal(t, testFlag(0), f1.Bits())
	require.Equal(t, Empty[testFlag](), f1)
	require.True(t, f1.IsEmpty())

	f2 := NewFlags(flag1)
	f3 := NewFlags(flag3)
	require.NotEqual(t, f2, f3)
	require.NotEqual(t, f2, f1)
	require.Equal(t, testFlag(0x1), f2.Bits())
	require.Equal(t, testFlag(0x4), f3.Bits())

	f4 := NewFlags(flag1, flag2, flag3)
	require.Equal(t, testFlag(0x7), f4.Bits())
	f5 := NewFlags(flag1, flag3)
	require.NotEqual(t, f4, f5)
	require.Equal(t, f5, f2.Union(f3))
	f5.SetFlag(flag2)
	require.Equal(t, f4, f5)

	require.Equal(t, NewFlags(flag1, flag3), NewFlags(flag3, flag1, flag3))
	require.Equal(t, NewFlags[testFlag](), Empty[testFlag]())
}

func TestFlagsEquality(t *testing.T) {
	t.Parallel()

	f := NewFlags(flag1, flag2)
	assert.True(t, f.Equal(FromBits[testFlag](0x3)))
	assert.True(t, f == FromBits[testFlag](0x3))
	assert.False(t, f.Equal(NewFlags(flag1)))

	// Is is an exact match, not an overlap.
	assert.True(t, NewFlags(flag2).Is(flag2))
	assert.False(t, f.Is(flag1))
	assert.True(t, Empty[testFlag]().Is(0))

	// Same bits under different enumerators are different types.
	var a any = NewFlags(flag1)
	var b any = NewFlags(otherFlag(1))
	assert.NotEqual(t, a, b)
}

func TestFlagsBitwiseOps(t *testing.T) {
	t.Parallel()

	all := NewFlags(flag1, flag2, flag3)
	empty := Empty[testFlag]()

	var f1 Flags[testFlag]
	f2 := NewFlags(flag2)
	require.Equal(t, f1, f1.Union(f1))
	require.True(t, f1.Union(NewFlags(flag2)).Is(flag2))
	require.Equal(t, f1, f2.Intersect(NewFlags(flag1)))

	f1.UnionWith(NewFlags(flag3))
	require.NotEqual(t, f2, f1)
	require.True(t, f1.Is(flag3))
	require.Equal(t, f1, f1.Union(NewFlags(flag3)))
	require.Equal(t, f1, f1.Intersect(NewFlags(flag3)))
	require.Equal(t, empty, f1.Intersect(NewFlags(flag1)))

	f3 := NewFlags(flag1, flag2)
	require.Equal(t, f3, f3.Union(empty))
	require.Equal(t, empty, f3.Intersect(empty))
	require.Equal(t, f3, f3.Xor(empty))

	f4 := NewFlags(flag1, flag3)
	require.Equal(t, all, f4.Union(f3))
	require.Equal(t, NewFlags(flag2, flag3), f4.Xor(f3))
	require.Equal(t, testFlag(0x6), f4.Xor(f3).Bits())
	require.True(t, f4.Intersect(f3).Is(flag1))
	require.Equal(t, testFlag(0x5), NewFlags(flag1).Union(NewFlags(flag3)).Bits())

	// Operands are not modified by the pure forms.
	require.Equal(t, testFlag(0x5), f4.Bits())
	require.Equal(t, testFlag(0x3), f3.Bits())

	f5 := f4
	f5.IntersectWith(f3)
	require.Equal(t, f4.Intersect(f3), f5)
	f5 = f4
	f5.XorWith(f3)
	require.Equal(t, f4.Xor(f3), f5)
}

func TestFlagsComplement(t *testing.T) {
	t.Parallel()

	require.Equal(t, testFlag(0xfa), NewFlags(flag1, flag3).Complement().Bits())
	require.Equal(t, testFlag(math.MaxUint8), Empty[testFlag]().Complement().Bits())

	type signedFlag int8
	f := NewFlags[signedFlag](0x1)
	// The sign bit is flipped too.
	require.Equal(t, signedFlag(-2), f.Complement().Bits())
	require.Equal(t, signedFlag(-1), Empty[signedFlag]().Complement().Bits())
	require.Equal(t, 8, Empty[signedFlag]().Complement().Count())
	require.Equal(t, f, f.Complement().Complement())

	type wideFlag uint32
	require.Equal(t, wideFlag(0xfffffffe), NewFlags[wideFlag](0x1).Complement().Bits())
}

func TestFlagsModifiers(t *testing.T) {
	t.Parallel()

	f1 := NewFlags(flag1, flag3)
	f2 := f1
	require.Equal(t, testFlag(0x5), f1.Bits())
	f1.SetFlag(flag2)
	f1.ClearFlag(flag1)
	require.Equal(t, testFlag(0x6), f1.Bits())
	require.Equal(t, testFlag(0x5), f2.Bits())

	f2.ToggleFlag(flag2)
	f2.ToggleFlag(flag2)
	f2.ToggleFlag(flag3)
	f2.ToggleFlag(flag3)
	f2.ToggleFlag(flag2)
	f2.ToggleFlag(flag1)
	require.Equal(t, f1, f2)
	f2.SetFlag(flag2)
	require.Equal(t, f1, f2)

	f2.ClearFlag(flag1)
	require.Equal(t, f1, f2)

	f2.Reset()
	require.True(t, f2.IsEmpty())
}

func TestFlagsMultiModifiers(t *testing.T) {
	t.Parallel()

	var f Flags[testFlag]
	f.SetFlags(flag1, flag3)
	require.Equal(t, NewFlags(flag1, flag3), f)

	f.ToggleFlags(flag1, flag2)
	require.Equal(t, NewFlags(flag2, flag3), f)

	f.ClearFlags(flag3, flag1)
	require.True(t, f.Is(flag2))

	f.SetMask(NewFlags(flag3))
	require.Equal(t, NewFlags(flag2, flag3), f)
	f.ToggleMask(NewFlags(flag3))
	require.True(t, f.Is(flag2))
	f.ClearMask(NewFlags(flag2, flag3))
	require.True(t, f.IsEmpty())

	f.SetFlags()
	require.True(t, f.IsEmpty())
}

func TestFlagsTest(t *testing.T) {
	t.Parallel()

	f1 := NewFlags(flag2)
	require.True(t, f1.HasFlag(flag2))
	require.False(t, f1.HasFlag(flag1))
	require.False(t, f1.HasFlag(flag3))

	f2 := NewFlags(flag1, flag2)
	require.True(t, f2.HasFlag(flag1))
	// Overlap: any bit of a composite flag is enough.
	require.True(t, f1.HasFlag(flag2|flag3))

	// Containment: every bit is required.
	require.False(t, f2.HasFlags(flag1, flag2, flag3))
	require.True(t, f2.HasFlags(flag2))
	require.True(t, f2.HasFlags(flag2, flag1))
	require.False(t, f2.HasMask(NewFlags(flag2, flag3)))

	require.True(t, f2.HasMask(Empty[testFlag]()))
	require.True(t, f2.HasFlags())
	require.True(t, Empty[testFlag]().HasMask(Empty[testFlag]()))
	require.False(t, Empty[testFlag]().HasFlag(0))
}

func TestFlagsAccessors(t *testing.T) {
	t.Parallel()

	f := NewFlags(flag1, flag3)
	require.Equal(t, uint64(0x5), f.Uint64())
	require.Equal(t, 8, f.BitsNum())
	require.Equal(t, 2, f.Count())

	var seen []testFlag
	f.Each(func(flag testFlag) bool {
		seen = append(seen, flag)
		return true
	})
	require.Equal(t, []testFlag{flag1, flag3}, seen)

	seen = nil
	NewFlags(flag1, flag2, flag3).Each(func(flag testFlag) bool {
		seen = append(seen, flag)
		return len(seen) < 2
	})
	require.Equal(t, []testFlag{flag1, flag2}, seen)

	require.Equal(t, 16, Empty[uint16]().BitsNum())
	require.Equal(t, 32, Empty[int32]().BitsNum())
	require.Equal(t, 64, Empty[uint64]().BitsNum())
	require.Equal(t, 64, FromBits[int64](-1).Count())
}

func testFromBitsRoundTrip[T constraints.Integer](t *testing.T, gen *rapid.Generator[T]) {
	t.Helper()

	rapid.Check(t, func(t *rapid.T) {
		x := gen.Draw(t, "x")
		require.Equal(t, x, FromBits(x).Bits())
	})
}

func testAlgebraLaws[T constraints.Integer](t *testing.T, gen *rapid.Generator[T]) {
	t.Helper()

	rapid.Check(t, func(t *rapid.T) {
		a := FromBits(gen.Draw(t, "a"))
		b := FromBits(gen.Draw(t, "b"))
		c := FromBits(gen.Draw(t, "c"))
		empty := Empty[T]()

		require.Equal(t, a.Union(b), b.Union(a))
		require.Equal(t, a.Intersect(b), b.Intersect(a))
		require.Equal(t, a.Xor(b), b.Xor(a))

		require.Equal(t, a.Union(b).Union(c), a.Union(b.Union(c)))
		require.Equal(t, a.Intersect(b).Intersect(c), a.Intersect(b.Intersect(c)))
		require.Equal(t, a.Xor(b).Xor(c), a.Xor(b.Xor(c)))

		require.Equal(t, a, a.Union(a))
		require.Equal(t, a, a.Intersect(a))
		require.Equal(t, empty, a.Xor(a))
		require.Equal(t, a, a.Union(empty))
		require.Equal(t, empty, a.Intersect(empty))
		require.Equal(t, a, a.Complement().Complement())

		require.True(t, a.HasMask(empty))
		require.True(t, a.Union(b).HasMask(b))
		require.Equal(t, a.Intersect(b) == b, a.HasMask(b))
		require.Equal(t, a.Intersect(b) != empty, a.HasFlag(b.Bits()))
	})
}

func testMutators[T constraints.Integer](t *testing.T, gen *rapid.Generator[T]) {
	t.Helper()

	rapid.Check(t, func(t *rapid.T) {
		before := FromBits(gen.Draw(t, "before"))
		flag := gen.Draw(t, "flag")
		other := FromBits(gen.Draw(t, "other"))

		f := before
		f.SetFlag(flag)
		require.Equal(t, before.Union(NewFlags(flag)), f)
		require.True(t, f.HasFlags(flag))

		f = before
		f.ClearFlag(flag)
		require.Equal(t, before.Intersect(NewFlags(flag).Complement()), f)

		f = before
		f.ToggleFlag(flag)
		require.Equal(t, before.Xor(NewFlags(flag)), f)
		f.ToggleFlag(flag)
		require.Equal(t, before, f)

		f = before
		f.ToggleMask(other)
		f.ToggleMask(other)
		require.Equal(t, before, f)

		f = before
		f.ClearMask(other)
		require.Equal(t, before.Intersect(other.Complement()), f)
		require.False(t, !other.IsEmpty() && f.HasFlag(other.Bits()))

		f = before
		f.UnionWith(other)
		require.Equal(t, before.Union(other), f)
	})
}

func testFoldOr[T constraints.Integer](t *testing.T, gen *rapid.Generator[T]) {
	t.Helper()

	rapid.Check(t, func(t *rapid.T) {
		flags := rapid.SliceOf(gen).Draw(t, "flags")

		var expected T
		for _, flag := range flags {
			expected |= NewFlags(flag).Bits()
		}
		require.Equal(t, expected, NewFlags(flags...).Bits())

		shuffled := rapid.Permutation(flags).Draw(t, "shuffled")
		require.Equal(t, NewFlags(flags...), NewFlags(shuffled...))
		require.Equal(t, NewFlags(flags...), NewFlags(append(flags, flags...)...))
	})
}

func testProperties[T constraints.Integer](t *testing.T, gen *rapid.Generator[T]) {
	t.Helper()

	t.Run("RoundTrip", func(t *testing.T) { testFromBitsRoundTrip(t, gen) })
	t.Run("Algebra", func(t *testing.T) { testAlgebraLaws(t, gen) })
	t.Run("Mutators", func(t *testing.T) { testMutators(t, gen) })
	t.Run("FoldOr", func(t *testing.T) { testFoldOr(t, gen) })
}

func TestFlagsProperties(t *testing.T) {
	t.Parallel()

	t.Run("uint8", func(t *testing.T) { testProperties(t, rapid.Uint8()) })
	t.Run("int8", func(t *testing.T) { testProperties(t, rapid.Int8()) })
	t.Run("uint16", func(t *testing.T) { testProperties(t, rapid.Uint16()) })
	t.Run("int32", func(t *testing.T) { testProperties(t, rapid.Int32()) })
	t.Run("uint64", func(t *testing.T) { testProperties(t, rapid.Uint64()) })
}
