package main

import (
	"os"

	"github.com/Kimmeng007/Heat-Equation-using-Finite-Difference/cmd"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := cmd.Root.Execute(); err != nil {
		log.WithError(err).Error("heat")
		os.Exit(1)
	}
}
