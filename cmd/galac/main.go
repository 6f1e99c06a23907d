package main

import "github.com/vela-lang/vela/cmd/galac/commands"

func main() {
	commands.Execute()
}
