package main

import "powerpages/cmd/powerpages/cmd"

func main() {
	cmd.Execute()
}
