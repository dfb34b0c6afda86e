package main

import "focusloop/cmd/focusloop/commands"

func main() {
	commands.Execute()
}
