package types

import (
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Enum is the constraint on flag enumerators: any named integer type.
// Values are expected to be single-bit, but any pattern is accepted.
type Enum = constraints.Integer

// Flags is a set of flags of the enumerator type T stored in a single
// integer of T's width. The zero value is the empty set.
type Flags[T Enum] struct {
	bits T
}

func Empty[T Enum]() Flags[T] {
	return Flags[T]{}
}

// NewFlags returns the union of the given flags.
func NewFlags[T Enum](flags ...T) Flags[T] {
	var f Flags[T]
	for _, flag := range flags {
		f.bits |= flag
	}
	return f
}

// FromBits wraps a raw storage value. No validation is done.
func FromBits[T Enum](bits T) Flags[T] {
	return Flags[T]{bits: bits}
}

func (f Flags[T]) Bits() T {
	return f.bits
}

func (f Flags[T]) Uint64() uint64 {
	return uint64(f.bits)
}

func (f Flags[T]) BitsNum() int {
	return int(unsafe.Sizeof(f.bits) * 8)
}

func (f Flags[T]) IsEmpty() bool {
	return f.bits == 0
}

// Count returns the number of set bits.
func (f Flags[T]) Count() int {
	return bits.OnesCount64(f.Uint64() & f.mask())
}

func (f Flags[T]) Equal(other Flags[T]) bool {
	return f.bits == other.bits
}

// Is reports whether the set consists of exactly the given flag.
func (f Flags[T]) Is(flag T) bool {
	return f.bits == flag
}

func (f Flags[T]) Union(other Flags[T]) Flags[T] {
	return Flags[T]{bits: f.bits | other.bits}
}

func (f Flags[T]) Intersect(other Flags[T]) Flags[T] {
	return Flags[T]{bits: f.bits & other.bits}
}

func (f Flags[T]) Xor(other Flags[T]) Flags[T] {
	return Flags[T]{bits: f.bits ^ other.bits}
}

// Complement flips every bit of the storage, including the sign bit of
// signed enumerators.
func (f Flags[T]) Complement() Flags[T] {
	return Flags[T]{bits: ^f.bits}
}

func (f *Flags[T]) UnionWith(other Flags[T]) {
	f.bits |= other.bits
}

func (f *Flags[T]) IntersectWith(other Flags[T]) {
	f.bits &= other.bits
}

func (f *Flags[T]) XorWith(other Flags[T]) {
	f.bits ^= other.bits
}

func (f *Flags[T]) SetFlag(flag T) {
	f.bits |= flag
}

func (f *Flags[T]) ClearFlag(flag T) {
	f.bits &^= flag
}

func (f *Flags[T]) ToggleFlag(flag T) {
	f.bits ^= flag
}

// HasFlag reports whether any bit of flag is set.
func (f Flags[T]) HasFlag(flag T) bool {
	return f.bits&flag != 0
}

func (f *Flags[T]) SetMask(other Flags[T]) {
	f.bits |= other.bits
}

func (f *Flags[T]) ClearMask(other Flags[T]) {
	f.bits &^= other.bits
}

func (f *Flags[T]) ToggleMask(other Flags[T]) {
	f.bits ^= other.bits
}

// HasMask reports whether every bit of other is set. The empty mask is
// contained in any set.
func (f Flags[T]) HasMask(other Flags[T]) bool {
	return f.bits&other.bits == other.bits
}

func (f *Flags[T]) SetFlags(flags ...T) {
	f.SetMask(NewFlags(flags...))
}

func (f *Flags[T]) ClearFlags(flags ...T) {
	f.ClearMask(NewFlags(flags...))
}

func (f *Flags[T]) ToggleFlags(flags ...T) {
	f.ToggleMask(NewFlags(flags...))
}

// HasFlags reports whether all the given flags are set.
func (f Flags[T]) HasFlags(flags ...T) bool {
	return f.HasMask(NewFlags(flags...))
}

func (f *Flags[T]) Reset() {
	f.bits = 0
}

// Each calls fn for every set bit, lowest bit first, until fn returns false.
func (f Flags[T]) Each(fn func(flag T) bool) {
	for i, n := 0, f.BitsNum(); i < n; i++ {
		flag := bit[T](i)
		if f.bits&flag != 0 && !fn(flag) {
			return
		}
	}
}

// mask keeps the low BitsNum() bits of a sign-extended Uint64 value.
func (f Flags[T]) mask() uint64 {
	n := f.BitsNum()
	if n == 64 {
		return ^uint64(0)
	}
	return uint64(1)<<n - 1
}

func bit[T Enum](i int) T {
	return T(1) << i
}
