package cprintf

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"unicode/utf8"
	"unsafe"

	"github.com/shogo82148/cprintf/wide"
)

// Kind is the type tag of an Arg.
type Kind uint8

const (
	KindNil Kind = iota // a NULL pointer; also what a missing argument reads as
	KindInt
	KindUint
	KindInt128
	KindUint128
	KindFloat
	KindString
	KindWString
	KindPointer
)

var kindNames = [...]string{
	KindNil:     "nil",
	KindInt:     "int",
	KindUint:    "uint",
	KindInt128:  "int128",
	KindUint128: "uint128",
	KindFloat:   "float",
	KindString:  "string",
	KindWString: "wstring",
	KindPointer: "pointer",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + string(appendInt(nil, int(k))) + ")"
}

// Arg is one formatting argument. The zero value is a nil pointer.
type Arg struct {
	kind Kind
	bits wide.Uint128 // integers and pointers; sign-extended for signed kinds
	f    float64
	s    string
	ws   []rune
}

func IntArg(v int64) Arg {
	return Arg{kind: KindInt, bits: wide.Int128From64(v).Uint128()}
}

func UintArg(v uint64) Arg {
	return Arg{kind: KindUint, bits: wide.From64(v)}
}

func Int128Arg(v wide.Int128) Arg {
	return Arg{kind: KindInt128, bits: v.Uint128()}
}

func Uint128Arg(v wide.Uint128) Arg {
	return Arg{kind: KindUint128, bits: v}
}

func FloatArg(v float64) Arg {
	return Arg{kind: KindFloat, f: v}
}

func StringArg(v string) Arg {
	return Arg{kind: KindString, s: v}
}

// WStringArg returns a wide string argument, for %ls.
func WStringArg(v []rune) Arg {
	return Arg{kind: KindWString, ws: v}
}

// PointerArg returns a pointer argument holding the address addr.
// Address zero is a nil pointer.
func PointerArg(addr uintptr) Arg {
	if addr == 0 {
		return Arg{}
	}
	return Arg{kind: KindPointer, bits: wide.From64(uint64(addr))}
}

// NilArg returns a nil pointer argument.
func NilArg() Arg {
	return Arg{}
}

// Kind returns the type tag of a.
func (a Arg) Kind() Kind {
	return a.kind
}

func (a Arg) String() string {
	switch a.kind {
	case KindInt, KindInt128:
		return a.bits.Int128().String()
	case KindUint, KindUint128:
		return a.bits.String()
	case KindFloat:
		return Sprintf("%.17g", a.f)
	case KindString:
		return strconv.Quote(a.s)
	case KindWString:
		return "L" + strconv.Quote(string(a.ws))
	case KindPointer:
		return Sprintf("(void*)%p", a.bits.Lo)
	}
	return "NULL"
}

// ArgOf converts a Go value to an Arg.
//
// Signed integers, bool and rune become KindInt, unsigned integers
// KindUint, floats KindFloat. Strings and byte slices become KindString,
// rune slices KindWString. Pointers, maps, channels, functions and slices of
// other types become KindPointer with their address. nil becomes KindNil.
// Other values implementing error or fmt.Stringer become their string.
func ArgOf(v any) Arg {
	switch v := v.(type) {
	case nil:
		return Arg{}
	case Arg:
		return v
	case int:
		return IntArg(int64(v))
	case int8:
		return IntArg(int64(v))
	case int16:
		return IntArg(int64(v))
	case int32:
		return IntArg(int64(v))
	case int64:
		return IntArg(v)
	case uint:
		return UintArg(uint64(v))
	case uint8:
		return UintArg(uint64(v))
	case uint16:
		return UintArg(uint64(v))
	case uint32:
		return UintArg(uint64(v))
	case uint64:
		return UintArg(v)
	case uintptr:
		return UintArg(uint64(v))
	case bool:
		if v {
			return IntArg(1)
		}
		return IntArg(0)
	case float32:
		return FloatArg(float64(v))
	case float64:
		return FloatArg(v)
	case wide.Int128:
		return Int128Arg(v)
	case wide.Uint128:
		return Uint128Arg(v)
	case string:
		return StringArg(v)
	case []byte:
		return StringArg(string(v))
	case []rune:
		return WStringArg(v)
	case unsafe.Pointer:
		return PointerArg(uintptr(v))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntArg(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return UintArg(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return FloatArg(rv.Float())
	case reflect.String:
		return StringArg(rv.String())
	}

	switch v := v.(type) {
	case error:
		return StringArg(v.Error())
	case fmt.Stringer:
		return StringArg(v.String())
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		return PointerArg(rv.Pointer())
	}
	return Arg{}
}

// Args is a cursor over a list of arguments. Each directive reads the
// arguments it needs in order: the '*' width, the '*' precision, then the
// value. Reading past the end yields the zero value of the requested type.
type Args struct {
	list []Arg
	pos  int
}

// NewArgs returns a cursor over the given values, converted with ArgOf.
func NewArgs(values ...any) *Args {
	list := make([]Arg, len(values))
	for i, v := range values {
		list[i] = ArgOf(v)
	}
	return &Args{list: list}
}

// ArgsOf returns a cursor over list.
func ArgsOf(list ...Arg) *Args {
	return &Args{list: list}
}

// Reset rewinds the cursor to the first argument.
func (a *Args) Reset() {
	a.pos = 0
}

// Len returns the total number of arguments.
func (a *Args) Len() int {
	return len(a.list)
}

// Remaining returns the number of arguments not read yet.
func (a *Args) Remaining() int {
	return len(a.list) - a.pos
}

// Next returns the next argument as is.
func (a *Args) Next() Arg {
	if a.pos >= len(a.list) {
		return Arg{}
	}
	arg := a.list[a.pos]
	a.pos++
	return arg
}

// integer returns the 128-bit integer view of arg.
func (a Arg) integer() wide.Uint128 {
	switch a.kind {
	case KindFloat:
		f := a.f
		switch {
		case f != f:
			return wide.Uint128{}
		case f >= 0x1p64:
			return wide.From64(math.MaxUint64)
		case f >= 0x1p63:
			return wide.From64(uint64(f))
		case f <= -0x1p63:
			return wide.Int128From64(math.MinInt64).Uint128()
		}
		return wide.Int128From64(int64(f)).Uint128()
	case KindString, KindWString:
		return wide.Uint128{}
	}
	return a.bits
}

// NextInt reads a C int, as used by '*' widths and precisions.
func (a *Args) NextInt() int {
	return int(int32(a.Next().integer().Lo))
}

// NextSigned reads a signed integer of the width selected by m, truncating
// and sign-extending like a C conversion.
func (a *Args) NextSigned(m LengthModifier) wide.Int128 {
	v := a.Next().integer()
	shift := 128 - m.Bits()
	return v.Lsh(shift).Int128().Rsh(shift)
}

// NextUnsigned reads an unsigned integer of the width selected by m,
// truncating like a C conversion.
func (a *Args) NextUnsigned(m LengthModifier) wide.Uint128 {
	v := a.Next().integer()
	shift := 128 - m.Bits()
	return v.Lsh(shift).Rsh(shift)
}

// NextFloat reads a double. Integer arguments are converted.
func (a *Args) NextFloat() float64 {
	arg := a.Next()
	switch arg.kind {
	case KindFloat:
		return arg.f
	case KindInt, KindInt128:
		return arg.bits.Int128().Float64()
	case KindUint, KindUint128:
		return arg.bits.Float64()
	}
	return 0
}

// NextString reads a string. It returns false for a nil pointer. Wide
// strings are encoded as UTF-8, other kinds read as the empty string.
func (a *Args) NextString() (string, bool) {
	arg := a.Next()
	switch arg.kind {
	case KindNil:
		return "", false
	case KindString:
		return arg.s, true
	case KindWString:
		return encodeRunes(arg.ws), true
	}
	return "", true
}

// NextPointer reads a pointer as an address. A nil pointer reads as 0.
func (a *Args) NextPointer() uint64 {
	return a.Next().integer().Lo
}

// encodeRunes converts a wide string to UTF-8. Invalid code points become
// U+FFFD.
func encodeRunes(rs []rune) string {
	buf := make([]byte, 0, len(rs))
	for _, r := range rs {
		buf = utf8.AppendRune(buf, r)
	}
	return string(buf)
}
