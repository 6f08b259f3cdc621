package main

import "github.com/habeeb-code-cell/Habeeb-s-kitchen/cmd"

func main() {
	cmd.Execute()
}
