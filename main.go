package main

import "gitlab-time-tracker/cmd"

func main() {
	cmd.Execute()
}
