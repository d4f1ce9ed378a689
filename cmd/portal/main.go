package main

import "github.com/mcoot/gameportal/internal/cli"

func main() {
	cli.Execute()
}
