//go:build cgo

// Package oracle formats single values with the C library's snprintf, for
// comparison in tests.
package oracle

/*
#include <stdio.h>
#include <stdlib.h>
#include <stddef.h>

static int fmt_ll(char *buf, size_t n, const char *f, long long v) { return snprintf(buf, n, f, v); }
static int fmt_ull(char *buf, size_t n, const char *f, unsigned long long v) { return snprintf(buf, n, f, v); }
static int fmt_int(char *buf, size_t n, const char *f, int v) { return snprintf(buf, n, f, v); }
static int fmt_double(char *buf, size_t n, const char *f, double v) { return snprintf(buf, n, f, v); }
static int fmt_str(char *buf, size_t n, const char *f, const char *v) { return snprintf(buf, n, f, v); }
static int fmt_ptr(char *buf, size_t n, const char *f, size_t v) { return snprintf(buf, n, f, (void *)v); }
static int fmt_star_double(char *buf, size_t n, const char *f, int w, int p, double v) { return snprintf(buf, n, f, w, p, v); }
*/
import "C"

import "unsafe"

type call func(buf *C.char, n C.size_t, f *C.char) C.int

// run calls fn with a buffer large enough for its output.
func run(format string, fn call) string {
	f := C.CString(format)
	defer C.free(unsafe.Pointer(f))

	buf := make([]byte, 512)
	for {
		n := int(fn((*C.char)(unsafe.Pointer(&buf[0])), C.size_t(len(buf)), f))
		if n < 0 {
			return ""
		}
		if n < len(buf) {
			return string(buf[:n])
		}
		buf = make([]byte, n+1)
	}
}

// LongLong formats v, which the format must consume as long long.
func LongLong(format string, v int64) string {
	return run(format, func(buf *C.char, n C.size_t, f *C.char) C.int {
		return C.fmt_ll(buf, n, f, C.longlong(v))
	})
}

// ULongLong formats v, which the format must consume as unsigned long long.
func ULongLong(format string, v uint64) string {
	return run(format, func(buf *C.char, n C.size_t, f *C.char) C.int {
		return C.fmt_ull(buf, n, f, C.ulonglong(v))
	})
}

// Int formats v, which the format must consume as int.
func Int(format string, v int32) string {
	return run(format, func(buf *C.char, n C.size_t, f *C.char) C.int {
		return C.fmt_int(buf, n, f, C.int(v))
	})
}

// Double formats v, which the format must consume as double.
func Double(format string, v float64) string {
	return run(format, func(buf *C.char, n C.size_t, f *C.char) C.int {
		return C.fmt_double(buf, n, f, C.double(v))
	})
}

// StarDouble formats v with a '*' width and a '*' precision.
func StarDouble(format string, width, prec int32, v float64) string {
	return run(format, func(buf *C.char, n C.size_t, f *C.char) C.int {
		return C.fmt_star_double(buf, n, f, C.int(width), C.int(prec), C.double(v))
	})
}

// String formats v, which the format must consume as char*.
func String(format string, v string) string {
	s := C.CString(v)
	defer C.free(unsafe.Pointer(s))
	return run(format, func(buf *C.char, n C.size_t, f *C.char) C.int {
		return C.fmt_str(buf, n, f, s)
	})
}

// Pointer formats the address v, which the format must consume as void*.
func Pointer(format string, v uintptr) string {
	return run(format, func(buf *C.char, n C.size_t, f *C.char) C.int {
		return C.fmt_ptr(buf, n, f, C.size_t(v))
	})
}
