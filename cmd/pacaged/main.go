package main

import "github.com/pacage/pacage/pkg/cli"

func main() {
	cli.Execute()
}
