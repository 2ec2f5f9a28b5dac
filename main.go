package main

import "professor-registry/cmd"

func main() {
	cmd.Execute()
}
