package main

import "github.com/mmukex/techpulse/cmd"

func main() {
	cmd.Execute()
}
