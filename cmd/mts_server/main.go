package main

import "github.com/mtslabs/mts/cmd"

func main() {
	cmd.Execute()
}
