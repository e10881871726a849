package main

import (
	"vinylshift/cmd"
	"vinylshift/logger"
)

func main() {
	defer logger.Sync()
	cmd.Execute()
}
