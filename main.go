package main

import "github.com/oss-intel/github-intel/cmd"

func main() {
	cmd.Execute()
}
