package main

import "github.com/pfrederiksen/termcal/internal/cli"

func main() {
	cli.Execute()
}
