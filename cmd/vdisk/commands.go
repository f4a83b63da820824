package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/infinivision/vdisk/config"
	"github.com/infinivision/vdisk/errmsg"
	"github.com/infinivision/vdisk/scan"
	"github.com/infinivision/vdisk/store"
)

const (
	greeting = "Hello Virtual Disk!"
)

func openStore(cfg *config.Cfg, logw io.Writer, create bool) (store.ClusterStore, error) {
	s := store.New(store.Config{Geometry: cfg.Geometry, LogWriter: logw})
	if err := s.Initialize(cfg.Path, create); err != nil {
		return nil, err
	}
	log.Debugf("opened %s (%s)", s.DiskPath(), s.Geometry())
	return s, nil
}

func runCreate(w io.Writer, cfg *config.Cfg, logw io.Writer) error {
	s, err := openStore(cfg, logw, true)
	if err != nil {
		return err
	}
	defer s.Close()
	fmt.Fprintf(w, "Disk initialized at: %s\nDisk size: %d bytes\n", s.DiskPath(), s.DiskSize())
	return nil
}

func runWrite(w io.Writer, cfg *config.Cfg, logw io.Writer, index int64, text string) error {
	s, err := openStore(cfg, logw, false)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.WriteCluster(index, []byte(text)); err != nil {
		return err
	}
	log.Infof("wrote %d bytes to cluster %d of %s", len(text), index, s.DiskPath())
	fmt.Fprintf(w, "Data written to cluster %d.\n", index)
	return nil
}

func runRead(w io.Writer, cfg *config.Cfg, logw io.Writer, index int64) error {
	s, err := openStore(cfg, logw, false)
	if err != nil {
		return err
	}
	defer s.Close()
	data, err := s.ReadCluster(index)
	if err != nil {
		if !errors.Is(err, errmsg.TruncatedMedium) {
			return err
		}
		log.Warningf("cluster %d: %v", index, err)
	}
	fmt.Fprintf(w, "%s\n", bytes.TrimRight(data, "\x00"))
	return nil
}

func runInspect(w io.Writer, cfg *config.Cfg) error {
	sc, err := scan.Open(cfg.Path, cfg.Geometry)
	if err != nil {
		return err
	}
	defer sc.Close()
	used := sc.Used()
	for _, c := range used {
		fmt.Fprintf(w, "%8d  %08x\n", c.Index, c.Sum)
	}
	fmt.Fprintf(w, "%d of %d clusters in use\n", len(used), cfg.Geometry.ClusterCount)
	return nil
}

// runDemo creates the disk if needed, stores a greeting in cluster 0
// and reads it back.
func runDemo(w io.Writer, cfg *config.Cfg, logw io.Writer) error {
	s, err := openStore(cfg, logw, true)
	if err != nil {
		return err
	}
	defer s.Close()
	fmt.Fprintf(w, "Disk initialized at: %s\n", s.DiskPath())
	fmt.Fprintf(w, "Disk size: %d bytes\n", s.DiskSize())

	if err := s.WriteCluster(0, []byte(greeting)); err != nil {
		return err
	}
	fmt.Fprintf(w, "Data written to cluster 0.\n")

	data, err := s.ReadCluster(0)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Data read from cluster 0: %s\n", bytes.TrimRight(data, "\x00"))

	s.Close()
	fmt.Fprintf(w, "Disk closed successfully.\n")
	return nil
}
