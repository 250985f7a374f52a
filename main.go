package main

import "github.com/user/aibrief/cmd"

func main() {
	cmd.Execute()
}
