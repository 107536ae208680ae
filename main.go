package main

import "github.com/user/rangecut/cmd"

func main() {
	cmd.Execute()
}
