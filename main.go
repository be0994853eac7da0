package main

import "github.com/KaramelBytes/depdash/cmd"

func main() {
	cmd.Execute()
}
