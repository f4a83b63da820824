package disk

import (
	"errors"
	"fmt"
	"os"

	"github.com/infinivision/vdisk/errmsg"
	"golang.org/x/sys/unix"
)

// lock takes an advisory flock on fp without blocking. flock locks
// belong to the open file description, so two handles on one medium
// exclude each other even inside a single process.
func lock(fp *os.File, how int) error {
	for {
		err := unix.Flock(int(fp.Fd()), how|unix.LOCK_NB)
		if err != unix.EINTR {
			return err
		}
	}
}

func unlock(fp *os.File) error {
	return unix.Flock(int(fp.Fd()), unix.LOCK_UN)
}

// Lock exposes lock for readers that open a medium themselves.
func Lock(fp *os.File, exclusive bool) error {
	how := unix.LOCK_SH
	if exclusive {
		how = unix.LOCK_EX
	}
	if err := lock(fp, how); err != nil {
		return lockError(fp.Name(), err)
	}
	return nil
}

func Unlock(fp *os.File) error {
	return unlock(fp)
}

func lockError(path string, err error) error {
	if errors.Is(err, unix.EWOULDBLOCK) {
		return fmt.Errorf("%w: %s", errmsg.ExclusiveLock, path)
	}
	return errmsg.NewIOError("lock", path, err)
}
