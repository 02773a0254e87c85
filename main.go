package main

import "mangadex/cmd"

func main() {
	cmd.Execute()
}
