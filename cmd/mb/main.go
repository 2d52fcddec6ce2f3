package main

import "missionboard/cmd/mb/root"

func main() {
	root.Execute()
}
