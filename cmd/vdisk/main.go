package main

import (
	"fmt"
	"io"
	"os"

	"github.com/akamensky/argparse"
	"github.com/infinivision/vdisk/common"
	"github.com/infinivision/vdisk/config"
	logging "github.com/op/go-logging"
)

var (
	log = logging.MustGetLogger("vdisk")
)

type options struct {
	path    *string
	config  *string
	verbose *bool
}

func addOptions(cmd *argparse.Command) *options {
	return &options{
		path: cmd.String("p", "path",
			&argparse.Options{Help: "disk file (default virtual_disk.bin)"}),
		config: cmd.String("c", "config",
			&argparse.Options{Help: "yaml configuration file"}),
		verbose: cmd.Flag("v", "verbose",
			&argparse.Options{Help: "debug logging"}),
	}
}

func main() {
	parser := argparse.NewParser("vdisk", "a tool for manipulating cluster-addressed disk files")

	createCmd := parser.NewCommand("create", "creates a zero-filled disk file if it is missing")
	createOpts := addOptions(createCmd)

	writeCmd := parser.NewCommand("write", "writes text to a cluster")
	writeOpts := addOptions(writeCmd)
	writeIdx := writeCmd.Int("i", "index",
		&argparse.Options{Required: true, Help: "cluster index"})
	writeData := writeCmd.String("d", "data",
		&argparse.Options{Required: true, Help: "text to store, at most one cluster long"})

	readCmd := parser.NewCommand("read", "prints the content of a cluster")
	readOpts := addOptions(readCmd)
	readIdx := readCmd.Int("i", "index",
		&argparse.Options{Required: true, Help: "cluster index"})

	inspectCmd := parser.NewCommand("inspect", "lists non-empty clusters with their checksums")
	inspectOpts := addOptions(inspectCmd)

	demoCmd := parser.NewCommand("demo", "writes and reads back a greeting in cluster 0")
	demoOpts := addOptions(demoCmd)

	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(2)
	}

	var err error
	switch {
	case createCmd.Happened():
		err = run(createOpts, func(cfg *config.Cfg, logw io.Writer) error {
			return runCreate(os.Stdout, cfg, logw)
		})
	case writeCmd.Happened():
		err = run(writeOpts, func(cfg *config.Cfg, logw io.Writer) error {
			return runWrite(os.Stdout, cfg, logw, int64(*writeIdx), *writeData)
		})
	case readCmd.Happened():
		err = run(readOpts, func(cfg *config.Cfg, logw io.Writer) error {
			return runRead(os.Stdout, cfg, logw, int64(*readIdx))
		})
	case inspectCmd.Happened():
		err = run(inspectOpts, func(cfg *config.Cfg, _ io.Writer) error {
			return runInspect(os.Stdout, cfg)
		})
	case demoCmd.Happened():
		err = run(demoOpts, func(cfg *config.Cfg, logw io.Writer) error {
			return runDemo(os.Stdout, cfg, logw)
		})
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads the configuration, sets up logging and hands both to fn.
func run(opts *options, fn func(*config.Cfg, io.Writer) error) error {
	cfg, err := loadConfig(*opts.config, *opts.path)
	if err != nil {
		return err
	}
	lf, err := common.ConfigureLogging(cfg.LogFile, *opts.verbose)
	if err != nil {
		return fmt.Errorf("error opening logfile: %s", err)
	}
	var logw io.Writer = os.Stderr
	if lf != nil {
		defer lf.Close()
		logw = lf
	}
	return fn(cfg, logw)
}

func loadConfig(filename, path string) (*config.Cfg, error) {
	cfg := config.Default()
	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("can not open config file %s: %s", filename, err)
		}
		defer f.Close()
		if cfg, err = config.Read(f); err != nil {
			return nil, err
		}
	}
	if path != "" {
		cfg.Path = path
	}
	return cfg, nil
}
