package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/uditisharmaaa/portfolio/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
