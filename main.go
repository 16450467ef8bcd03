package main

import "github.com/rnwolfe/momentum/cmd"

func main() {
	cmd.Execute()
}
