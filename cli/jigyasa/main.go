package main

import (
	"os"

	jigyasacmder "github.com/papercomputeco/jigyasa/cmd/jigyasa"
)

func main() {
	cmd := jigyasacmder.NewJigyasaCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
