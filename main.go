package main

import "github.com/Tiliavir/trivial-jira-logger/cmd"

func main() {
	cmd.Execute()
}
