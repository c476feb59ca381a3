package main

import "github.com/thoughtcloud/thoughtcloud/internal/cli"

func main() {
	cli.Execute()
}
