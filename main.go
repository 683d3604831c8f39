package main

import "github.com/quickpass/quickpass/cmd"

func main() {
	cmd.Execute()
}
