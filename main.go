package main

import "pve-bootstrap/cmd"

// set via -ldflags at release build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
