package main

import "mural/cmd"

func main() {
	cmd.Execute()
}
