package store

import (
	"fmt"
	"os"

	"github.com/infinivision/vdisk/disk"
	"github.com/infinivision/vdisk/errmsg"
	"github.com/infinivision/vdisk/geometry"
	"github.com/infinivision/vdisk/sum"
	"github.com/nnsgmsone/damrey/logger"
)

func DefaultConfig() Config {
	return Config{
		Geometry:  geometry.Default(),
		LogWriter: os.Stderr,
	}
}

// New returns a closed store. Call Initialize to attach a medium.
func New(cfg Config) *store {
	if cfg.LogWriter == nil {
		cfg.LogWriter = os.Stderr
	}
	return &store{
		g:   cfg.Geometry,
		log: logger.New(cfg.LogWriter, "vdisk"),
	}
}

// Initialize attaches the medium at path, creating a zero-filled one
// first when it is missing and createIfMissing is set. On failure the
// store stays closed.
func (s *store) Initialize(path string, createIfMissing bool) error {
	s.Lock()
	defer s.Unlock()
	if s.d != nil {
		return fmt.Errorf("%w: %s", errmsg.AlreadyOpen, s.path)
	}
	if err := s.g.Validate(); err != nil {
		return err
	}
	ok, err := disk.Exists(path)
	if err != nil {
		return err
	}
	if !ok {
		if !createIfMissing {
			return fmt.Errorf("%w: %s", errmsg.NotFound, path)
		}
		if err := disk.Create(path, s.g); err != nil {
			return err
		}
	}
	d, err := disk.Open(path, s.g)
	if err != nil {
		return err
	}
	s.d, s.path, s.size = d, path, s.g.Size()
	if size, err := d.Size(); err == nil && uint64(size) != s.size {
		s.log.Errorf("medium '%s' has %d bytes, geometry %s needs %d\n", path, size, s.g, s.size)
	}
	return nil
}

// Close releases the medium. It never fails and may be called any
// number of times; release errors are only logged.
func (s *store) Close() {
	s.Lock()
	defer s.Unlock()
	if s.d == nil {
		return
	}
	if err := s.d.Close(); err != nil {
		s.log.Errorf("close '%s' failed: %v\n", s.path, err)
	}
	s.d = nil
}

func (s *store) Flush() error {
	s.Lock()
	defer s.Unlock()
	if s.d == nil {
		return errmsg.NotOpen
	}
	return s.d.Flush()
}

// WriteCluster replaces cluster index with data followed by zero
// padding up to the cluster size. The write is synced before it returns.
func (s *store) WriteCluster(index int64, data []byte) error {
	s.Lock()
	defer s.Unlock()
	if err := s.check(index); err != nil {
		return err
	}
	if len(data) > int(s.g.ClusterSize) {
		return fmt.Errorf("%w: %d > %d bytes", errmsg.OversizedData, len(data), s.g.ClusterSize)
	}
	buf := make([]byte, s.g.ClusterSize)
	copy(buf, data)
	return s.d.Write(index, buf)
}

// ReadCluster returns a copy of cluster index. If the medium ends inside
// the cluster, the bytes present are returned with errmsg.TruncatedMedium.
func (s *store) ReadCluster(index int64) ([]byte, error) {
	s.Lock()
	defer s.Unlock()
	if err := s.check(index); err != nil {
		return nil, err
	}
	buf := make([]byte, s.g.ClusterSize)
	n, err := s.d.Read(index, buf)
	if err != nil {
		if n > 0 {
			return buf[:n], err
		}
		return nil, err
	}
	return buf, nil
}

func (s *store) Checksum(index int64) (uint32, error) {
	data, err := s.ReadCluster(index)
	if err != nil {
		return 0, err
	}
	return sum.Cluster(data), nil
}

func (s *store) IsOpen() bool {
	s.Lock()
	defer s.Unlock()
	return s.d != nil
}

// DiskSize is the size of the last attached medium in bytes.
func (s *store) DiskSize() uint64 {
	s.Lock()
	defer s.Unlock()
	return s.size
}

func (s *store) DiskPath() string {
	s.Lock()
	defer s.Unlock()
	return s.path
}

func (s *store) Geometry() geometry.Geometry {
	return s.g
}

func (s *store) check(index int64) error {
	switch {
	case s.d == nil:
		return errmsg.NotOpen
	case !s.g.Contains(index):
		return fmt.Errorf("%w: %d not in [0, %d)", errmsg.IndexOutOfRange, index, s.g.ClusterCount)
	}
	return nil
}
