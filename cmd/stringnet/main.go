// Command stringnet runs Monte Carlo simulations of the Z3 string-net model
// on a periodic square lattice.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "stringnet:", err)
		stop()
		os.Exit(1)
	}
}
