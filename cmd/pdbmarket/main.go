package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/ixmetrics/peeringdb-market/cmd/pdbmarket/commands"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	commands.ExecuteContext(ctx)
}
