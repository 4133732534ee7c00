package main

import "github.com/mserebryaakov/aggregator-pim/cmd/pim/commands"

func main() {
	commands.Execute()
}
