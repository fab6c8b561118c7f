package main

import "github.com/khanhnv2901/scope-intel/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
