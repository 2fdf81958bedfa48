package main

import "github.com/veraison/scaffold/cmd/scaffold/cmd"

func main() {
	cmd.Execute()
}
