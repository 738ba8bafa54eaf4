package main

import "github.com/gaurav-prasanna/issueboss/cmd"

func main() {
	cmd.Execute()
}
