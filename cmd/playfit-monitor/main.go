package main

import (
	"github.com/pfrederiksen/playfit-monitor/internal/cli"
)

func main() {
	cli.Execute()
}
