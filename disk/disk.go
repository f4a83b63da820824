package disk

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/infinivision/vdisk/constant"
	"github.com/infinivision/vdisk/errmsg"
	"github.com/infinivision/vdisk/geometry"
	"golang.org/x/sys/unix"
)

// Exists reports whether a medium is present at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, errmsg.NewIOError("stat", path, err)
	}
}

// Create builds a zero-filled medium of g.Size() bytes under a temporary
// name next to path and links it into place. path is never observable
// with a partial size; a crash leaves at most a stray temporary file.
// If path appears concurrently, the existing medium wins. On filesystems
// without hard links the medium is filled in place instead, which loses
// that guarantee.
func Create(path string, g geometry.Geometry) error {
	if err := g.Validate(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	fp, err := tempFile(path)
	if err != nil {
		return errmsg.NewIOError("create", path, err)
	}
	tmp := fp.Name()
	defer os.Remove(tmp)
	if err := fill(fp, g); err != nil {
		return errmsg.NewIOError("create", path, err)
	}
	switch err := link(tmp, path); {
	case err == nil || os.IsExist(err):
	case noLinks(err):
		if err := createInPlace(path, g); err != nil {
			return errmsg.NewIOError("create", path, err)
		}
	default:
		return errmsg.NewIOError("create", path, err)
	}
	if err := syncDir(dir); err != nil {
		return errmsg.NewIOError("create", path, err)
	}
	return nil
}

// Open opens an existing medium for exclusive read/write access.
func Open(path string, g geometry.Geometry) (*disk, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	fp, err := os.OpenFile(path, os.O_RDWR, constant.FileMode)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: %s", errmsg.NotFound, path)
	case err != nil:
		return nil, errmsg.NewIOError("open", path, err)
	}
	if err := lock(fp, unix.LOCK_EX); err != nil {
		fp.Close()
		return nil, lockError(path, err)
	}
	return &disk{path: path, fp: fp, g: g}, nil
}

func (d *disk) Close() error {
	uerr := unlock(d.fp)
	if err := d.fp.Close(); err != nil {
		return errmsg.NewIOError("close", d.path, err)
	}
	if uerr != nil {
		return errmsg.NewIOError("unlock", d.path, uerr)
	}
	return nil
}

func (d *disk) Flush() error {
	if err := d.fp.Sync(); err != nil {
		return errmsg.NewIOError("sync", d.path, err)
	}
	return nil
}

func (d *disk) Size() (int64, error) {
	st, err := d.fp.Stat()
	if err != nil {
		return 0, errmsg.NewIOError("stat", d.path, err)
	}
	return st.Size(), nil
}

// Read fills buf, which must be exactly one cluster long, with cluster
// cn. A medium that ends inside the cluster yields the bytes present and
// errmsg.TruncatedMedium.
func (d *disk) Read(cn int64, buf []byte) (int, error) {
	if err := d.check(cn, buf); err != nil {
		return 0, err
	}
	n, err := d.fp.ReadAt(buf, d.g.Offset(cn))
	switch {
	case n == len(buf):
		return n, nil
	case err == nil || errors.Is(err, io.EOF):
		return n, fmt.Errorf("%w: cluster %d has %d of %d bytes", errmsg.TruncatedMedium, cn, n, len(buf))
	default:
		return n, errmsg.NewIOError("read", d.path, err)
	}
}

// Write stores buf, which must be exactly one cluster long, as cluster
// cn and syncs it to stable storage.
func (d *disk) Write(cn int64, buf []byte) error {
	if err := d.check(cn, buf); err != nil {
		return err
	}
	n, err := d.fp.WriteAt(buf, d.g.Offset(cn))
	switch {
	case err != nil:
		return errmsg.NewIOError("write", d.path, err)
	case n != len(buf):
		return errmsg.NewIOError("write", d.path, io.ErrShortWrite)
	}
	return d.Flush()
}

func (d *disk) check(cn int64, buf []byte) error {
	if !d.g.Contains(cn) {
		return fmt.Errorf("%w: %d not in [0, %d)", errmsg.IndexOutOfRange, cn, d.g.ClusterCount)
	}
	if len(buf) != int(d.g.ClusterSize) {
		return fmt.Errorf("disk: buffer of %d bytes for a %d byte cluster", len(buf), d.g.ClusterSize)
	}
	return nil
}

var link = os.Link

func noLinks(err error) bool {
	return errors.Is(err, unix.EPERM) || errors.Is(err, unix.ENOTSUP) || errors.Is(err, unix.EOPNOTSUPP)
}

// tempFile opens a fresh file next to path. The mode goes through
// os.OpenFile so the process umask applies.
func tempFile(path string) (*os.File, error) {
	for i := 0; ; i++ {
		name := path + "." + strconv.FormatUint(uint64(rand.Uint32()), 10) + constant.TempSuffix
		fp, err := os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, constant.FileMode)
		if os.IsExist(err) && i < 100 {
			continue
		}
		return fp, err
	}
}

func createInPlace(path string, g geometry.Geometry) error {
	fp, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, constant.FileMode)
	switch {
	case os.IsExist(err):
		return nil
	case err != nil:
		return err
	}
	return fill(fp, g)
}

// fill zero-fills fp, syncs and closes it.
func fill(fp *os.File, g geometry.Geometry) error {
	if err := zeroFill(fp, g); err != nil {
		fp.Close()
		return err
	}
	if err := fp.Sync(); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

func zeroFill(w io.Writer, g geometry.Geometry) error {
	buf := make([]byte, g.ClusterSize)
	for i := uint32(0); i < g.ClusterCount; i++ {
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func syncDir(dir string) error {
	fp, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer fp.Close()
	return fp.Sync()
}
