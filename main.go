package main

import "github.com/truststack/socialmon/cmd"

func main() {
	cmd.Execute()
}
