package types

import (
	"errors"
	"fmt"
	"math/bits"
	"reflect"
	"slices"
	"strings"

	"github.com/JeffreyRichter/enum/enum"
	"github.com/NilFoundation/flagset/common/check"
)

var (
	ErrUnknownFlag    = errors.New("unknown flag")
	ErrDuplicateFlag  = errors.New("duplicate flag")
	ErrNotSingleBit   = errors.New("flag is not a single bit")
	ErrNoFlagsDefined = errors.New("no flags defined")
)

// Symbols is an ordered table of the declared single-bit flags of T and
// their names. It supplies the name lookup and the flag count used by the
// rendering methods of Flags.
type Symbols[T Enum] struct {
	declared []T
	names    []string
	byFlag   map[T]int
	byName   map[string]T
}

// NewSymbols builds a table from the declared flags, naming each with name.
// Flags keep the order they are declared in.
func NewSymbols[T Enum](declared []T, name func(T) string) (*Symbols[T], error) {
	if len(declared) == 0 {
		return nil, ErrNoFlagsDefined
	}

	s := &Symbols[T]{
		declared: slices.Clone(declared),
		names:    make([]string, len(declared)),
		byFlag:   make(map[T]int, len(declared)),
		byName:   make(map[string]T, len(declared)),
	}
	for i, flag := range declared {
		if !isSingleBit(flag) {
			return nil, fmt.Errorf("%w: %v", ErrNotSingleBit, uint64(flag))
		}
		if _, found := s.byFlag[flag]; found {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateFlag, uint64(flag))
		}
		n := name(flag)
		key := strings.ToLower(n)
		if _, found := s.byName[key]; found {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFlag, n)
		}
		s.names[i] = n
		s.byFlag[flag] = i
		s.byName[key] = flag
	}
	return s, nil
}

// StringerSymbols builds a table naming each flag with its String method.
func StringerSymbols[T interface {
	Enum
	fmt.Stringer
}](declared ...T) (*Symbols[T], error) {
	return NewSymbols(declared, func(flag T) string { return flag.String() })
}

// ReflectSymbols builds a table from a method-style enum, where every
// declared value is a method on T returning T:
//
//	var EPerm = Perm(0)
//	func (Perm) Read() Perm  { return Perm(1) }
//	func (Perm) Write() Perm { return Perm(2) }
//
// Symbols that are not a single bit (none, all, combinations) are skipped.
// Methods carry no declaration order, so flags are ordered by bit position.
func ReflectSymbols[T Enum]() (*Symbols[T], error) {
	var (
		zero     T
		declared []T
		names    = make(map[T]string)
	)
	enum.GetSymbols(reflect.TypeOf(zero), func(enumSymbolName string, enumSymbolValue interface{}) (stop bool) {
		flag, ok := enumSymbolValue.(T)
		if !ok || !isSingleBit(flag) {
			return false
		}
		// Aliases keep the first name in method order.
		if _, found := names[flag]; !found {
			names[flag] = enumSymbolName
			declared = append(declared, flag)
		}
		return false
	})
	slices.SortFunc(declared, func(a, b T) int {
		return bitIndex(a) - bitIndex(b)
	})
	return NewSymbols(declared, func(flag T) string { return names[flag] })
}

// Name returns the declared name of a single flag, or its hex value if the
// flag is not declared.
func (s *Symbols[T]) Name(flag T) string {
	if i, found := s.byFlag[flag]; found {
		return s.names[i]
	}
	return fmt.Sprintf("%#x", uint64(flag))
}

// Count returns the number of declared flags.
func (s *Symbols[T]) Count() int {
	return len(s.declared)
}

func (s *Symbols[T]) Declared() []T {
	return slices.Clone(s.declared)
}

func (s *Symbols[T]) Names() []string {
	return slices.Clone(s.names)
}

// All returns the union of all declared flags.
func (s *Symbols[T]) All() Flags[T] {
	return NewFlags(s.declared...)
}

// Lookup finds a flag by name, ignoring case.
func (s *Symbols[T]) Lookup(name string) (T, error) {
	flag, found := s.byName[strings.ToLower(strings.TrimSpace(name))]
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
	}
	return flag, nil
}

// Parse reads a comma-separated list of flag names. Empty items are ignored,
// so "" yields the empty set.
func (s *Symbols[T]) Parse(str string) (Flags[T], error) {
	var f Flags[T]
	for _, item := range strings.Split(str, namesSeparator) {
		if strings.TrimSpace(item) == "" {
			continue
		}
		flag, err := s.Lookup(item)
		if err != nil {
			return Flags[T]{}, err
		}
		f.SetFlag(flag)
	}
	return f, nil
}

// Undeclared returns the set bits that no declared flag covers.
func (s *Symbols[T]) Undeclared(f Flags[T]) Flags[T] {
	return f.Intersect(s.All().Complement())
}

// Format renders the set flags compactly: declared flags in declaration
// order, then undeclared bits as hex, lowest first.
func (s *Symbols[T]) Format(f Flags[T]) string {
	names := make([]string, 0, f.Count())
	for i, flag := range s.declared {
		if f.HasFlag(flag) {
			names = append(names, s.names[i])
		}
	}
	s.Undeclared(f).Each(func(flag T) bool {
		names = append(names, s.Name(flag))
		return true
	})
	return strings.Join(names, namesSeparator)
}

// FormatAnnotated renders every flag up to the highest declared bit with a
// "+" or "-" prefix.
func (s *Symbols[T]) FormatAnnotated(f Flags[T]) string {
	var sb strings.Builder
	check.PanicIfErr(f.WriteAllNames(&sb, s.Name, s.flagCount(), true))
	return sb.String()
}

// flagCount is the number of bit positions covered by the declared flags.
func (s *Symbols[T]) flagCount() int {
	highest := 0
	for _, flag := range s.declared {
		highest = max(highest, bitIndex(flag))
	}
	return highest + 1
}

func isSingleBit[T Enum](flag T) bool {
	return flag != 0 && flag&(flag-1) == 0
}

func bitIndex[T Enum](flag T) int {
	var f Flags[T]
	return bits.TrailingZeros64(uint64(flag) & f.mask())
}
