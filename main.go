package main

import "github.com/denysvitali/dirscope-runtime/cmd"

func main() {
	cmd.Execute()
}
