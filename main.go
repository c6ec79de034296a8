package main

import "github.com/jsphweid/chordtrainer/cmd"

func main() {
	cmd.Execute()
}
