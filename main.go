package main

import "craftdex/cmd"

func main() {
	cmd.Execute()
}
