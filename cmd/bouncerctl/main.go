package main

import "github.com/aussiebroadwan/bouncer/cmd/bouncerctl/cmd"

func main() {
	cmd.Execute()
}
