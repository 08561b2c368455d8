package calc

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/NilFoundation/flagset/types"
)

// Flag is a flag of a domain whose names are only known at runtime.
// Bit i is named by the i-th name of the domain.
type Flag uint64

type Flags = types.Flags[Flag]

const MaxFlags = 64

var (
	ErrTooManyFlags = errors.New("too many flags")
	ErrEmptyName    = errors.New("empty flag name")

	ErrPresetConflict = errors.New("preset name is already in use")
)

type Domain struct {
	symbols *types.Symbols[Flag]
	presets map[string]Flags
}

func NewDomain(names []string) (*Domain, error) {
	if len(names) > MaxFlags {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyFlags, len(names), MaxFlags)
	}

	declared := make([]Flag, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w at bit %d", ErrEmptyName, i)
		}
		declared[i] = Flag(1) << i
	}
	symbols, err := types.NewSymbols(declared, func(f Flag) string {
		return strings.TrimSpace(names[bits.TrailingZeros64(uint64(f))])
	})
	if err != nil {
		return nil, err
	}
	return &Domain{symbols: symbols, presets: make(map[string]Flags)}, nil
}

func (d *Domain) Symbols() *types.Symbols[Flag] {
	return d.symbols
}

// ParseValue accepts either an integer literal (any base prefix accepted by
// strconv.ParseUint) or a comma-separated list of flag and preset names.
func (d *Domain) ParseValue(s string) (Flags, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return types.Empty[Flag](), nil
	}
	if raw, err := strconv.ParseUint(s, 0, 64); err == nil {
		return types.FromBits(Flag(raw)), nil
	}
	return d.parse(s)
}

// ParseNames folds names given as separate arguments, each of which may be a
// comma-separated list itself.
func (d *Domain) ParseNames(args []string) (Flags, error) {
	return d.parse(strings.Join(args, ","))
}

func (d *Domain) parse(s string) (Flags, error) {
	var f Flags
	for _, item := range strings.Split(s, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		if preset, found := d.Preset(item); found {
			f.UnionWith(preset)
			continue
		}
		flag, err := d.symbols.Lookup(item)
		if err != nil {
			return Flags{}, err
		}
		f.SetFlag(flag)
	}
	return f, nil
}

func (d *Domain) Format(f Flags) string {
	return d.symbols.Format(f)
}

func (d *Domain) FormatAnnotated(f Flags) string {
	return d.symbols.FormatAnnotated(f)
}

// Undeclared returns the set bits that no name covers.
func (d *Domain) Undeclared(f Flags) Flags {
	return d.symbols.Undeclared(f)
}
