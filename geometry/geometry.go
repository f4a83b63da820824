package geometry

import (
	"fmt"
	"math"

	"github.com/infinivision/vdisk/constant"
	"github.com/infinivision/vdisk/errmsg"
)

// Geometry fixes the shape of a medium: ClusterCount clusters of
// ClusterSize bytes each, laid out back to back with no header.
type Geometry struct {
	ClusterSize  uint32 `yaml:"cluster_size"`
	ClusterCount uint32 `yaml:"cluster_count"`
}

func Default() Geometry {
	return Geometry{
		ClusterSize:  constant.ClusterSize,
		ClusterCount: constant.ClusterCount,
	}
}

func New(size, count uint32) (Geometry, error) {
	g := Geometry{ClusterSize: size, ClusterCount: count}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

func (g Geometry) Validate() error {
	switch {
	case g.ClusterSize == 0:
		return fmt.Errorf("%w: cluster size is zero", errmsg.InvalidGeometry)
	case g.ClusterCount == 0:
		return fmt.Errorf("%w: cluster count is zero", errmsg.InvalidGeometry)
	case g.Size() > math.MaxInt64:
		return fmt.Errorf("%w: %d x %d overflows a file offset", errmsg.InvalidGeometry, g.ClusterSize, g.ClusterCount)
	}
	return nil
}

// Size is the total number of bytes of the medium. The product of two
// uint32 values always fits in a uint64.
func (g Geometry) Size() uint64 {
	return uint64(g.ClusterSize) * uint64(g.ClusterCount)
}

func (g Geometry) Contains(index int64) bool {
	return index >= 0 && index < int64(g.ClusterCount)
}

// Offset returns the byte offset of cluster index. The caller checks
// Contains first.
func (g Geometry) Offset(index int64) int64 {
	return index * int64(g.ClusterSize)
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.ClusterCount, g.ClusterSize)
}
