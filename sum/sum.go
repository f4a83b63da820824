package sum

import (
	"hash"
	"hash/crc32"
)

var table = crc32.MakeTable(crc32.Castagnoli)

func Sum(h hash.Hash32, data []byte) uint32 {
	h.Reset()
	h.Write(data)
	return h.Sum32()
}

// Cluster returns the CRC32-Castagnoli checksum of one cluster.
func Cluster(data []byte) uint32 {
	return Sum(crc32.New(table), data)
}

// Zero reports whether every byte of data is zero.
func Zero(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
