package main

import "github.com/shaharia-lab/bankalerts/cmd"

func main() {
	cmd.Execute()
}
