package main

import (
	"os"

	"github.com/pohlang/plhub/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
