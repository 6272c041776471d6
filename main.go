package main

import (
	"context"
	"os"

	"github.com/dendrascience/poetry-auto-export/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute(context.Background()))
}
