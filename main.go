package main

import "github.com/freegames-hub/freegames/cmd"

func main() {
	cmd.Execute()
}
