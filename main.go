package main

import "TaiGate/cmd"

func main() {
	cmd.Run()
}
