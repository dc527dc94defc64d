package main

import "github.com/ppiankov/toolrisk/internal/cli"

func main() {
	cli.Execute()
}
