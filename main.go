package main

import "colsweep/cmd"

func main() {
	cmd.Execute()
}
