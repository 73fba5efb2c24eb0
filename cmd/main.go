package main

import (
	"github.com/convobudget/convobudget/cmd/cli"
)

func main() {
	cli.Execute()
}
