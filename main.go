package main

import "licensecrawl/internal/cli"

func main() {
	cli.Execute()
}
