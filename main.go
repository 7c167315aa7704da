package main

import "github.com/streambinder/mediadownloader/cmd"

func main() {
	cmd.Execute()
}
