package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/shogo82148/cprintf"
)

func (a *app) scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan FORMAT",
		Short: "List the directives of a format string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			writeTable(a.stdout, scanRows(unescape(args[0])))
			return nil
		},
	}
}

var scanHeader = []string{"OFFSET", "LITERAL", "DIRECTIVE", "FLAGS", "WIDTH", "PRECISION", "LENGTH", "CONV", "CANONICAL"}

// scanRows describes each directive of format, with the literal text
// before it. Unrecognized directives have an empty canonical form.
func scanRows(format string) [][]string {
	rows := [][]string{scanHeader}
	offset := 0
	for {
		d, ok := cprintf.Scan(format[offset:], nil)
		if !ok {
			break
		}
		literal := format[offset : offset+d.Offset]
		pos := offset + d.Offset
		offset = pos + len(d.Text)

		width := ""
		switch {
		case d.WidthStar:
			width = "*"
		case d.Width > 0:
			width = strconv.Itoa(d.Width)
		}
		prec := ""
		switch d.Precision.Mode {
		case cprintf.PrecStar:
			prec = ".*"
		case cprintf.PrecSome:
			prec = "." + strconv.Itoa(d.Precision.Value)
		}
		conv := ""
		if d.Conversion != 0 {
			conv = string(d.Conversion)
		}
		canonical := ""
		if d.Recognized() {
			canonical = d.String()
		}
		rows = append(rows, []string{
			strconv.Itoa(pos),
			quote(literal),
			d.Text,
			d.Flags.String(),
			width,
			prec,
			d.Length.String(),
			conv,
			canonical,
		})
	}
	if offset < len(format) {
		rows = append(rows, []string{strconv.Itoa(offset), quote(format[offset:]), "", "", "", "", "", "", ""})
	}
	return rows
}

func quote(s string) string {
	if s == "" {
		return ""
	}
	return strconv.Quote(s)
}

// writeTable writes rows in columns aligned by display width.
func writeTable(w io.Writer, rows [][]string) {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		var sb strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString("  ")
		}
		fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
	}
}
