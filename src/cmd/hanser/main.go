package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

var rootCmd = newRootCmd()

func execute() error {
	return rootCmd.Execute()
}

func main() {
	_ = godotenv.Load()
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
