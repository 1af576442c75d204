package main

import (
	"os"

	"github.com/student-spending/spendboard/cmd/spend/internal/command"
)

func main() {
	if err := command.NewRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
