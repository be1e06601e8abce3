package main

import (
	"os"

	"github.com/hnrobert/lusu/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
