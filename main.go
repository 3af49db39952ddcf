package main

import "github.com/kamusis/embedprep/cmd"

func main() {
	cmd.Execute()
}
