package main

import (
	"github.com/mhout/cadence/cmd"
)

func main() {
	cmd.Execute()
}
