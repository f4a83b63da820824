package common

import (
	"io"
	"os"

	logging "github.com/op/go-logging"
)

// ConfigureLogging configures logging to a given filename
// If filename is empty, logging is being redirected to os.Stderr
func ConfigureLogging(filename string, verbose bool) (*os.File, error) {
	var w io.Writer = os.Stderr
	var lf *os.File
	var err error

	if filename != "" {
		lf, err = os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
		if err != nil {
			return nil, err
		}
		w = lf
	}
	format := logging.MustStringFormatter(
		`[%{time:2006-01-02 15:04:05.000}] %{level:7s} %{message}`,
	)
	backend := logging.AddModuleLevel(
		logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), format))
	if verbose {
		backend.SetLevel(logging.DEBUG, "")
	} else {
		backend.SetLevel(logging.INFO, "")
	}
	logging.SetBackend(backend)
	return lf, nil
}
