//go:build unix

package docroot

import (
	"os"
	"syscall"
)

// openFlags keeps opens from waiting on FIFOs and devices. The flag has no
// effect on regular files or directories.
const openFlags = os.O_RDONLY | syscall.O_NONBLOCK
