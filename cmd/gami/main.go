package main

import (
	"github.com/gamiempire/sovereign/internal/cli"
)

func main() {
	cli.Execute()
}
