package main

import "github.com/OpenTraceLab/OpenTraceCurve/cmd/otc/cmd"

func main() {
	cmd.Execute()
}
