package main

import "github.com/spotify/basic-pitch-go/cmd"

func main() {
	cmd.Execute()
}
