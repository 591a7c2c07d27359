package main

import "github.com/andrescamacho/fuelmon-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
