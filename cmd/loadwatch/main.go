package main

import "github.com/ppiankov/loadwatch/internal/cli"

func main() {
	cli.Execute()
}
