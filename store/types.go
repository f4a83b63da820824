package store

import (
	"io"
	"sync"

	"github.com/infinivision/vdisk/disk"
	"github.com/infinivision/vdisk/geometry"
	"github.com/nnsgmsone/damrey/logger"
)

/*
ClusterStore owns one fixed-geometry medium and reads and writes it a
whole cluster at a time. ClusterStore is thread-safe; calls are
serialized on a single mutex.
*/
type ClusterStore interface {
	Initialize(string, bool) error
	Close()
	Flush() error

	ReadCluster(int64) ([]byte, error)
	WriteCluster(int64, []byte) error
	Checksum(int64) (uint32, error)

	IsOpen() bool
	DiskSize() uint64
	DiskPath() string
	Geometry() geometry.Geometry
}

type Config struct {
	Geometry  geometry.Geometry
	LogWriter io.Writer
}

type store struct {
	sync.Mutex
	size uint64
	path string
	d    disk.Disk // nil while closed
	g    geometry.Geometry
	log  logger.Log
}
