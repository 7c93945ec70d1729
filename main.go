package main

import (
	"os"

	"github.com/llehouerou/tagdeck/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
