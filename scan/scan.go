// Package scan gives a read-only view of a medium for inspection. The
// medium is memory-mapped under a shared lock, so a scan cannot run
// while a store holds the medium open.
package scan

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/infinivision/vdisk/disk"
	"github.com/infinivision/vdisk/errmsg"
	"github.com/infinivision/vdisk/geometry"
	"github.com/infinivision/vdisk/sum"
)

type Cluster struct {
	Index int64
	Sum   uint32
}

type Scanner struct {
	fp   *os.File
	data mmap.MMap
	g    geometry.Geometry
}

// Open maps the medium at path. A medium whose size differs from
// g.Size() is rejected with errmsg.TruncatedMedium when short and
// errmsg.InvalidGeometry when long.
func Open(path string, g geometry.Geometry) (*Scanner, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	fp, err := os.Open(path)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: %s", errmsg.NotFound, path)
	case err != nil:
		return nil, errmsg.NewIOError("open", path, err)
	}
	if err := disk.Lock(fp, false); err != nil {
		fp.Close()
		return nil, err
	}
	st, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, errmsg.NewIOError("stat", path, err)
	}
	switch size := uint64(st.Size()); {
	case size < g.Size():
		fp.Close()
		return nil, fmt.Errorf("%w: %s has %d of %d bytes", errmsg.TruncatedMedium, path, size, g.Size())
	case size > g.Size():
		fp.Close()
		return nil, fmt.Errorf("%w: %s has %d bytes, geometry %s needs %d", errmsg.InvalidGeometry, path, size, g, g.Size())
	}
	m, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		fp.Close()
		return nil, errmsg.NewIOError("mmap", path, err)
	}
	return &Scanner{fp: fp, data: m, g: g}, nil
}

// View returns cluster index as a slice of the mapping. It is valid
// until Close and must not be modified.
func (s *Scanner) View(index int64) ([]byte, error) {
	if !s.g.Contains(index) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", errmsg.IndexOutOfRange, index, s.g.ClusterCount)
	}
	o := s.g.Offset(index)
	return s.data[o : o+int64(s.g.ClusterSize)], nil
}

// Used lists every cluster holding at least one non-zero byte.
func (s *Scanner) Used() []Cluster {
	var cs []Cluster

	for i := int64(0); i < int64(s.g.ClusterCount); i++ {
		v, _ := s.View(i)
		if sum.Zero(v) {
			continue
		}
		cs = append(cs, Cluster{Index: i, Sum: sum.Cluster(v)})
	}
	return cs
}

func (s *Scanner) Close() error {
	if s.data != nil {
		if err := s.data.Unmap(); err != nil {
			return errmsg.NewIOError("munmap", s.fp.Name(), err)
		}
		s.data = nil
	}
	if s.fp != nil {
		name := s.fp.Name()
		uerr := disk.Unlock(s.fp)
		err := s.fp.Close()
		s.fp = nil
		switch {
		case err != nil:
			return errmsg.NewIOError("close", name, err)
		case uerr != nil:
			return errmsg.NewIOError("unlock", name, uerr)
		}
	}
	return nil
}
