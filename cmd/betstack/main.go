package main

import (
	"github.com/betstack/betstack/internal/cli"
)

func main() {
	cli.Execute()
}
