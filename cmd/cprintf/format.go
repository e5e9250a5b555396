package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/shogo82148/cprintf"
	"github.com/shogo82148/cprintf/internal/operand"
	"github.com/shogo82148/cprintf/sink"
)

func (a *app) formatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format FORMAT [OPERAND...]",
		Short: "Format operands like printf(1)",
		Long: `Format writes FORMAT with the operands, like printf(1). Backslash escapes
in FORMAT are interpreted. Each operand is converted to the type of the
directive consuming it; integers are 64 bits wide unless the directive
has a length modifier. The format is reused while operands remain.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runFormat,
	}
	// operands may start with '-'
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().Int("capacity", -1, "format into a buffer of this many bytes (negative: unbounded)")
	cmd.Flags().Bool("normalize", false, "normalize string operands to NFC")
	return cmd
}

func (a *app) runFormat(cmd *cobra.Command, args []string) error {
	capacity := a.cfg.Capacity
	if cmd.Flags().Changed("capacity") {
		var err error
		if capacity, err = cmd.Flags().GetInt("capacity"); err != nil {
			return err
		}
	}
	normalize := a.cfg.Normalize
	if cmd.Flags().Changed("normalize") {
		var err error
		if normalize, err = cmd.Flags().GetBool("normalize"); err != nil {
			return err
		}
	}

	format := widen(unescape(args[0]))
	slots := plan(format)
	conv := &converter{logger: a.logger, normalize: normalize}

	var s sink.Sink
	var bounded *sink.Bounded
	var buf sink.Bytes
	if capacity >= 0 {
		bounded = sink.NewBounded(make([]byte, capacity))
		s = bounded
	} else {
		s = sink.NewGrowable(&buf)
	}

	operands := args[1:]
	for {
		var list []cprintf.Arg
		list, operands = conv.args(slots, operands)
		cprintf.Format(s, format, cprintf.ArgsOf(list...))
		if len(operands) == 0 {
			break
		}
		if len(slots) == 0 {
			a.logger.Warn("ignoring excess operands", "count", len(operands))
			break
		}
	}

	out := []byte(buf)
	if bounded != nil {
		out = bounded.Bytes()
		if bounded.Truncated() {
			a.logger.Warn("output truncated", "capacity", capacity, "length", bounded.Len())
		}
	}
	if _, err := a.stdout.Write(out); err != nil {
		return err
	}
	if conv.failed {
		return errSilent
	}
	return nil
}

// widen gives the j modifier to integer directives without a length
// modifier, since integer operands are intmax_t.
func widen(format string) string {
	var sb strings.Builder
	for {
		d, ok := cprintf.Scan(format, nil)
		if !ok {
			break
		}
		sb.WriteString(format[:d.Offset])
		format = format[d.Offset+len(d.Text):]
		if d.Recognized() && d.Length == cprintf.LenNone && strings.IndexByte("diouxX", d.Conversion) >= 0 {
			d.Length = cprintf.LenJ
			sb.WriteString(d.String())
			continue
		}
		sb.WriteString(d.Text)
	}
	sb.WriteString(format)
	return sb.String()
}

// slot is the type of operand a directive consumes.
type slot uint8

const (
	slotStar slot = iota // '*' width or precision
	slotInt
	slotUint
	slotFloat
	slotChar
	slotString
	slotPointer
)

var slotNames = [...]string{
	slotStar:    "star",
	slotInt:     "int",
	slotUint:    "uint",
	slotFloat:   "float",
	slotChar:    "char",
	slotString:  "string",
	slotPointer: "pointer",
}

func (s slot) String() string {
	return slotNames[s]
}

// plan returns the operands one pass over format consumes, in order.
func plan(format string) []slot {
	var slots []slot
	for {
		d, ok := cprintf.Scan(format, nil)
		if !ok {
			return slots
		}
		format = format[d.Offset+len(d.Text):]
		if !d.Recognized() {
			continue
		}
		if d.WidthStar {
			slots = append(slots, slotStar)
		}
		if d.Precision.Mode == cprintf.PrecStar {
			slots = append(slots, slotStar)
		}
		switch d.Conversion {
		case 'd', 'i':
			slots = append(slots, slotInt)
		case 'u', 'o', 'x', 'X':
			slots = append(slots, slotUint)
		case 'f', 'F', 'e', 'E', 'g', 'G', 'a', 'A':
			slots = append(slots, slotFloat)
		case 'c':
			slots = append(slots, slotChar)
		case 's', 'S':
			slots = append(slots, slotString)
		case 'p':
			slots = append(slots, slotPointer)
		}
	}
}

// converter turns operands into arguments, logging the ones that do not
// convert cleanly.
type converter struct {
	logger    *slog.Logger
	normalize bool
	failed    bool
}

// args converts the operands of one pass and returns the rest. Missing
// operands read as zero or the empty string.
func (c *converter) args(slots []slot, operands []string) ([]cprintf.Arg, []string) {
	list := make([]cprintf.Arg, len(slots))
	for i, sl := range slots {
		if len(operands) == 0 {
			list[i] = zero(sl)
			continue
		}
		list[i] = c.arg(sl, operands[0])
		operands = operands[1:]
	}
	return list, operands
}

func zero(sl slot) cprintf.Arg {
	switch sl {
	case slotString:
		return cprintf.StringArg("")
	case slotFloat:
		return cprintf.FloatArg(0)
	case slotPointer:
		return cprintf.NilArg()
	}
	return cprintf.IntArg(0)
}

func (c *converter) arg(sl slot, s string) cprintf.Arg {
	switch sl {
	case slotStar:
		v, err := operand.Int(s)
		if err != nil {
			c.report(sl, s, err)
		}
		n, err := safecast.Conv[int32](v)
		if err != nil {
			c.report(sl, s, fmt.Errorf("invalid field width or precision: %w", err))
		}
		return cprintf.IntArg(int64(n))
	case slotInt:
		v, err := operand.Int(s)
		if err != nil {
			c.report(sl, s, err)
		}
		return cprintf.IntArg(v)
	case slotUint:
		v, err := operand.Uint(s)
		if err != nil {
			c.report(sl, s, err)
		}
		return cprintf.UintArg(v)
	case slotFloat:
		v, err := operand.Float(s)
		if err != nil {
			c.report(sl, s, err)
		}
		return cprintf.FloatArg(v)
	case slotChar:
		// the first byte of the operand, like printf(1)
		if s == "" {
			return cprintf.IntArg(0)
		}
		return cprintf.IntArg(int64(s[0]))
	case slotPointer:
		v, err := operand.Uint(s)
		if err != nil {
			c.report(sl, s, err)
		}
		p, err := safecast.Conv[uintptr](v)
		if err != nil {
			c.report(sl, s, err)
		}
		return cprintf.PointerArg(p)
	}
	if c.normalize && !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	return cprintf.StringArg(s)
}

func (c *converter) report(sl slot, s string, err error) {
	c.failed = true
	if errors.Is(err, operand.ErrPartial) {
		c.logger.Error("operand not completely converted", "operand", s, "type", sl)
		return
	}
	c.logger.Error("invalid operand", "operand", s, "type", sl, "err", err)
}

// unescape interprets the backslash escapes of a printf(1) format. A '%'
// produced by an escape is literal text.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		var b byte
		switch c = s[i]; c {
		case 'a':
			b = '\a'
		case 'b':
			b = '\b'
		case 'f':
			b = '\f'
		case 'n':
			b = '\n'
		case 'r':
			b = '\r'
		case 't':
			b = '\t'
		case 'v':
			b = '\v'
		case '\\', '"', '\'':
			b = c
		case '0', '1', '2', '3', '4', '5', '6', '7':
			n := 0
			for j := 0; j < 3 && i < len(s) && '0' <= s[i] && s[i] <= '7'; j++ {
				n = n*8 + int(s[i]-'0')
				i++
			}
			i--
			b = byte(n)
		case 'x':
			n, j := 0, i+1
			for ; j < len(s) && j < i+3 && isHex(s[j]); j++ {
				n = n*16 + hexValue(s[j])
			}
			if j == i+1 {
				// no digits: keep the text
				sb.WriteString(`\x`)
				continue
			}
			i = j - 1
			b = byte(n)
		case 'u', 'U':
			size := 4
			if c == 'U' {
				size = 8
			}
			if i+size >= len(s) || !allHex(s[i+1:i+1+size]) {
				sb.WriteByte('\\')
				sb.WriteByte(c)
				continue
			}
			r := 0
			for _, h := range []byte(s[i+1 : i+1+size]) {
				r = r*16 + hexValue(h)
			}
			i += size
			switch {
			case r == '%':
				sb.WriteString("%%")
			case utf8.ValidRune(rune(r)):
				sb.WriteRune(rune(r))
			default:
				sb.WriteRune(utf8.RuneError)
			}
			continue
		default:
			sb.WriteByte('\\')
			sb.WriteByte(c)
			continue
		}
		if b == '%' {
			sb.WriteString("%%")
		} else {
			sb.WriteByte(b)
		}
	}
	return sb.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c|0x20 && c|0x20 <= 'f'
}

func allHex(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return false
		}
	}
	return true
}

func hexValue(c byte) int {
	if c <= '9' {
		return int(c - '0')
	}
	return int(c|0x20-'a') + 10
}
