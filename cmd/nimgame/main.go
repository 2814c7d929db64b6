package main

import "github.com/mcoot/nimgame-go/internal/cli"

func main() {
	cli.Execute()
}
