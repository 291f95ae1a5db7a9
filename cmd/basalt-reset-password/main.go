package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/basaltlabs/basalt/internal/cli"
)

func main() {
	_ = godotenv.Load()

	defaultDBPath := os.Getenv("BASALT_DB_PATH")
	if defaultDBPath == "" {
		defaultDBPath = filepath.Join("data", "basalt.db")
	}

	dbPath := flag.String("db", defaultDBPath, "path to the sqlite database")
	username := flag.String("username", "", "username of the account to reset")
	flag.Parse()

	account := *username
	if account == "" && flag.NArg() > 0 {
		account = flag.Arg(0)
	}

	if err := cli.RunResetPasswordCommand(*dbPath, account); err != nil {
		fmt.Fprintf(os.Stderr, "reset password: %v\n", err)
		os.Exit(1)
	}
}
