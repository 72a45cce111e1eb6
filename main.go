package main

import "github.com/mustafa-siddiqui/gmockgen/cmd"

func main() {
	cmd.Execute()
}
