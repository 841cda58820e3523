package main

import "github.com/emiliopalmerini/preptrack/internal/cli"

func main() {
	cli.Execute()
}
