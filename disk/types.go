package disk

import (
	"os"

	"github.com/infinivision/vdisk/geometry"
)

// Disk is a fixed-geometry medium addressed by cluster number. Every
// Read and Write transfers exactly one cluster.
type Disk interface {
	Close() error
	Flush() error
	Size() (int64, error)
	Write(int64, []byte) error
	Read(int64, []byte) (int, error)
}

type disk struct {
	path string
	fp   *os.File
	g    geometry.Geometry
}
