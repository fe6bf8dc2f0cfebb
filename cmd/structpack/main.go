package main

import "github.com/arloliu/structpack/cmd/structpack/cmd"

func main() {
	cmd.Execute()
}
