package main

import "github.com/Rorical/RoriSend/cmd"

func main() {
	cmd.Execute()
}
