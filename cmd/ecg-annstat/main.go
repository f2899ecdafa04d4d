package main

import (
	"github.com/cardiokit/ecg/cmd/ecg-annstat/cmd"
)

func main() {
	cmd.Run()
}
