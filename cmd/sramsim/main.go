// Package main provides the sramsim command line.
// sramsim drives a cycle-accurate byte-maskable memory model with stimulus
// programs and reports the registered read data of every clock edge.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
