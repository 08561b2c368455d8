package types

import (
	"fmt"
	"io"
	"strings"

	"github.com/NilFoundation/flagset/common/check"
)

const namesSeparator = ","

// WriteNames writes the names of the set flags in bit order, separated by commas.
func (f Flags[T]) WriteNames(w io.Writer, name func(T) string) error {
	nw := namesWriter{w: w}
	f.Each(func(flag T) bool {
		nw.write("", name(flag))
		return nw.err == nil
	})
	return nw.err
}

// WriteAllNames writes the first flagCount flags in bit order. With annotate
// every flag is written with a "+" (set) or "-" (clear) prefix; otherwise
// clear flags are skipped.
func (f Flags[T]) WriteAllNames(w io.Writer, name func(T) string, flagCount int, annotate bool) error {
	check.PanicIfNotf(flagCount >= 0 && flagCount <= f.BitsNum(),
		"flag count %d out of range [0, %d]", flagCount, f.BitsNum())

	nw := namesWriter{w: w}
	for i := 0; i < flagCount && nw.err == nil; i++ {
		flag := bit[T](i)
		set := f.bits&flag != 0
		switch {
		case annotate && set:
			nw.write("+", name(flag))
		case annotate:
			nw.write("-", name(flag))
		case set:
			nw.write("", name(flag))
		}
	}
	return nw.err
}

// String renders the set flags with fmt.Sprint, so enumerators implementing
// fmt.Stringer are printed by name.
func (f Flags[T]) String() string {
	var sb strings.Builder
	check.PanicIfErr(f.WriteNames(&sb, sprint[T]))
	return sb.String()
}

func sprint[T Enum](flag T) string {
	return fmt.Sprint(flag)
}

type namesWriter struct {
	w     io.Writer
	count int
	err   error
}

func (nw *namesWriter) write(prefix, name string) {
	if nw.count > 0 {
		if _, nw.err = io.WriteString(nw.w, namesSeparator); nw.err != nil {
			return
		}
	}
	nw.count++
	_, nw.err = io.WriteString(nw.w, prefix+name)
}
