package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// Value stores the raw bits, so a Flags column is a plain integer.
func (f Flags[T]) Value() (driver.Value, error) {
	return int64(f.bits), nil
}

func (f *Flags[T]) Scan(src any) error {
	var raw int64
	switch v := src.(type) {
	case int64:
		raw = v
	case []byte:
		return f.scanString(string(v))
	case string:
		return f.scanString(v)
	case nil:
		raw = 0
	default:
		return fmt.Errorf("can't scan %T into flags", src)
	}
	f.bits = T(raw)
	return nil
}

func (f *Flags[T]) scanString(s string) error {
	raw, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Unsigned columns may exceed int64.
		u, uerr := strconv.ParseUint(s, 10, 64)
		if uerr != nil {
			return fmt.Errorf("can't scan %q into flags: %w", s, err)
		}
		f.bits = T(u)
		return nil
	}
	f.bits = T(raw)
	return nil
}

var (
	_ driver.Valuer = Flags[uint8]{}
	_ sql.Scanner   = new(Flags[uint8])
)

func (f Flags[T]) MarshalZerologObject(e *zerolog.Event) {
	e.Str("bits", fmt.Sprintf("%#x", f.Uint64()&f.mask()))
	e.Str("names", f.String())
}

var _ zerolog.LogObjectMarshaler = Flags[uint8]{}

// FlagsValue adapts a Flags to pflag.Value, parsing names with the given
// Symbols. The first Set replaces the default; later ones add to it.
type FlagsValue[T Enum] struct {
	flags   *Flags[T]
	symbols *Symbols[T]
	changed bool
}

func NewFlagsValue[T Enum](value *Flags[T], defaultValue Flags[T], symbols *Symbols[T]) *FlagsValue[T] {
	*value = defaultValue
	return &FlagsValue[T]{flags: value, symbols: symbols}
}

func (v *FlagsValue[T]) String() string {
	if v.flags == nil {
		return ""
	}
	return v.symbols.Format(*v.flags)
}

func (v *FlagsValue[T]) Set(input string) error {
	f, err := v.symbols.Parse(input)
	if err != nil {
		return err
	}
	if !v.changed {
		*v.flags = f
		v.changed = true
	} else {
		v.flags.SetMask(f)
	}
	return nil
}

func (v *FlagsValue[T]) Type() string {
	return "flags"
}

var _ pflag.Value = new(FlagsValue[uint8])
