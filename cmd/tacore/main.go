package main

import (
	"github.com/c9s/tacore/pkg/cmd"
)

func main() {
	cmd.Execute()
}
