package main

import "github.com/openkraken/kraken-cli/internal/cli"

func main() {
	cli.Execute()
}
