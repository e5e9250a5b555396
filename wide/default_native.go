//go:build !cprintf_portable

package wide

type defaultArith = nativeArith
