package main

import "github.com/riverlog/eventlog/cmd/logfile-cli/cmd"

func main() {
	cmd.Execute()
}
