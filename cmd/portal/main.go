package main

import (
	"github.com/megahubnet/portal/internal/cli"
)

func main() {
	cli.Execute()
}
