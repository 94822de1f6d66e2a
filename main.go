package main

import "github.com/qmetlab/qmet/cmd"

func main() {
	cmd.Execute()
}
