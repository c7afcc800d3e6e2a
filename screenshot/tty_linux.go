//go:build linux

package screenshot

import (
	"os"

	"golang.org/x/sys/unix"
)

// isTerminal は f が端末に接続されているかを TCGETS で調べます。
func isTerminal(f *os.File) bool {
	_, err := unix.IoctlGetTermios(int(f.Fd()), unix.TCGETS)
	return err == nil
}
