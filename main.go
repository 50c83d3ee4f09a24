package main

import "sheetsite/cmd"

func main() {
	cmd.Execute()
}
