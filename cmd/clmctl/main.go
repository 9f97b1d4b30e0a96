// Package main is the entry point of clmctl, the maintenance CLI of the
// contract lifecycle platform.
package main

import (
	"log"
	"os"

	"github.com/rpsg-tech/clm-sub005/cmd/clmctl/internal/commands"
)

func main() {
	rootCmd, err := commands.NewRootCommand(commands.ConfigPathFromEnv())
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
