package main

import "github.com/iksnae/asc/cmd"

func main() {
	cmd.Execute()
}
