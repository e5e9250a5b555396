// Package corpus reads, runs and records formatting test cases.
//
// Hand-written corpora are TOML files with one [[case]] table per case.
// Recorded corpora are msgpack snapshots written by Save.
package corpus

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/shogo82148/cprintf"
	"github.com/shogo82148/cprintf/sink"
	"github.com/shogo82148/cprintf/wide"
)

// SchemaVersion is the version of the msgpack snapshot format.
// Increment it when Case changes.
const SchemaVersion uint16 = 1

var (
	// ErrUnknownType is returned for an argument type Arg does not know.
	ErrUnknownType = errors.New("corpus: unknown argument type")

	// ErrUnknownFormat is returned by Load for an unsupported file extension.
	ErrUnknownFormat = errors.New("corpus: unknown file format")

	// ErrSchema is returned by Load for a snapshot of another schema version.
	ErrSchema = errors.New("corpus: unsupported schema version")
)

// ArgSpec is the textual form of one argument.
type ArgSpec struct {
	Type  string `toml:"type" msgpack:"type"`
	Value string `toml:"value" msgpack:"value"`
}

// Case is one formatting call and its expected output.
type Case struct {
	Name     string    `toml:"name" msgpack:"name"`
	Format   string    `toml:"format" msgpack:"format"`
	Args     []ArgSpec `toml:"args" msgpack:"args"`
	Capacity *int      `toml:"capacity" msgpack:"capacity"` // bounded output when set
	Want     string    `toml:"want" msgpack:"want"`
	WantLen  *int      `toml:"want_len" msgpack:"want_len"` // return value; len(Want) when unset
}

type file struct {
	Schema uint16 `toml:"schema" msgpack:"schema"`
	Cases  []Case `toml:"case" msgpack:"cases"`
}

// Arg converts the spec to a formatting argument.
//
// Integers accept Go syntax with base prefixes; int128 and uint128 accept
// any size in range. Floats accept Go syntax including hexadecimal floats,
// inf, nan and -nan. A char is a single UTF-8 character. A pointer is an
// address; zero is nil.
func (s ArgSpec) Arg() (cprintf.Arg, error) {
	v := s.Value
	switch s.Type {
	case "int":
		n, err := strconv.ParseInt(v, 0, 64)
		if err != nil {
			return cprintf.Arg{}, err
		}
		return cprintf.IntArg(n), nil
	case "uint":
		n, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return cprintf.Arg{}, err
		}
		return cprintf.UintArg(n), nil
	case "int128", "uint128":
		return parse128(s.Type, v)
	case "float":
		f, err := parseFloat(v)
		if err != nil {
			return cprintf.Arg{}, err
		}
		return cprintf.FloatArg(f), nil
	case "string":
		return cprintf.StringArg(v), nil
	case "wstring":
		return cprintf.WStringArg([]rune(v)), nil
	case "char":
		r, size := utf8.DecodeRuneInString(v)
		if size == 0 || size != len(v) {
			return cprintf.Arg{}, fmt.Errorf("char %q: want exactly one character", v)
		}
		return cprintf.IntArg(int64(r)), nil
	case "pointer":
		n, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return cprintf.Arg{}, err
		}
		return cprintf.PointerArg(uintptr(n)), nil
	case "nil":
		return cprintf.NilArg(), nil
	}
	return cprintf.Arg{}, fmt.Errorf("%w %q", ErrUnknownType, s.Type)
}

func parseFloat(v string) (float64, error) {
	switch strings.ToLower(v) {
	case "nan", "+nan":
		return math.NaN(), nil
	case "-nan":
		return math.Copysign(math.NaN(), -1), nil
	}
	return strconv.ParseFloat(v, 64)
}

var (
	minInt128  = new(big.Int).Lsh(big.NewInt(-1), 127)
	maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	mask64     = new(big.Int).SetUint64(math.MaxUint64)
)

func parse128(typ, v string) (cprintf.Arg, error) {
	n, ok := new(big.Int).SetString(v, 0)
	if !ok {
		return cprintf.Arg{}, fmt.Errorf("%s %q: invalid syntax", typ, v)
	}
	lo, hi := minInt128, maxUint128
	if typ == "int128" {
		hi = new(big.Int).Not(minInt128)
	} else {
		lo = new(big.Int)
	}
	if n.Cmp(lo) < 0 || n.Cmp(hi) > 0 {
		return cprintf.Arg{}, fmt.Errorf("%s %q: value out of range", typ, v)
	}

	// two's complement in 128 bits
	u := new(big.Int).And(n, maxUint128)
	x := wide.New(
		new(big.Int).Rsh(u, 64).Uint64(),
		new(big.Int).And(u, mask64).Uint64(),
	)
	if typ == "int128" {
		return cprintf.Int128Arg(x.Int128()), nil
	}
	return cprintf.Uint128Arg(x), nil
}

// Result is the outcome of running a case.
type Result struct {
	Case Case
	Got  string
	Len  int   // value returned by the formatter
	Err  error // the arguments could not be converted
}

// Passed reports whether the output and length match the expectation.
func (r Result) Passed() bool {
	if r.Err != nil || r.Got != r.Case.Want {
		return false
	}
	if r.Case.WantLen != nil {
		return r.Len == *r.Case.WantLen
	}
	return r.Len == len(r.Case.Want)
}

// Run formats the case.
func (c Case) Run() Result {
	res := Result{Case: c}
	list := make([]cprintf.Arg, len(c.Args))
	for i, spec := range c.Args {
		arg, err := spec.Arg()
		if err != nil {
			res.Err = fmt.Errorf("argument %d: %w", i+1, err)
			return res
		}
		list[i] = arg
	}
	args := cprintf.ArgsOf(list...)

	if c.Capacity != nil {
		buf := make([]byte, max(*c.Capacity, 0))
		b := sink.NewBounded(buf)
		res.Len = cprintf.Format(b, c.Format, args)
		res.Got = string(b.Bytes())
		return res
	}
	var buf sink.Bytes
	res.Len = cprintf.Format(sink.NewGrowable(&buf), c.Format, args)
	res.Got = string(buf)
	return res
}

// Load reads the cases of a .toml corpus or a .msgpack snapshot.
func Load(path string) ([]Case, error) {
	var f file
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &f); err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	case ".msgpack", ".mp":
		r, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		if err := msgpack.NewDecoder(r).Decode(&f); err != nil {
			return nil, fmt.Errorf("%s: failed to decode: %w", path, err)
		}
		if f.Schema != SchemaVersion {
			return nil, fmt.Errorf("%s: %w %d", path, ErrSchema, f.Schema)
		}
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	for i := range f.Cases {
		if f.Cases[i].Name == "" {
			f.Cases[i].Name = fmt.Sprintf("%s#%d", filepath.Base(path), i+1)
		}
	}
	return f.Cases, nil
}

// Save writes cases to w as a msgpack snapshot.
func Save(w io.Writer, cases []Case) error {
	return msgpack.NewEncoder(w).Encode(&file{Schema: SchemaVersion, Cases: cases})
}

// SaveFile writes a snapshot to path, replacing it atomically.
func SaveFile(path string, cases []Case) (err error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err := Save(f, cases); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
