package main

import "morphseg/internal/cli"

func main() {
	cli.Execute()
}
