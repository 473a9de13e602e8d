package main

import "github.com/finbright/sparkfield/cmd"

func main() {
	cmd.Execute()
}
