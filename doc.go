/*
Package vdisk implements a fixed-geometry block store in pure Go. A single
file holds a fixed number of fixed-size clusters, addressed by index and
read or written one whole cluster at a time. Writes are synced before they
return and the file is held under an exclusive lock while open.
*/
package vdisk
