package main

import (
	"os"

	"github.com/kubecarto/kubecarto/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
