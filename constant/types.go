package constant

import "os"

const (
	ClusterSize  = 1024
	ClusterCount = 1024
)

const (
	FileMode = os.FileMode(0664)
)

const (
	TempSuffix = ".tmp"
)
