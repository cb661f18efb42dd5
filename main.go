package main

import "github.com/nockchain/nocktool/cmd"

func main() {
	cmd.Execute()
}
