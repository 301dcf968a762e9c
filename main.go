package main

import (
	"os"

	"github.com/scheerer/hueled/internal/logging"
)

var logger = logging.New("main")

func main() {
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
