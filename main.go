package main

import "github.com/user/video-cutter/cmd"

func main() {
	cmd.Execute()
}
