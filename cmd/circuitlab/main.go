package main

import "circuitlab/cmd/circuitlab/cmd"

func main() {
	cmd.Execute()
}
