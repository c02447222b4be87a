// Command lpfit fits polynomials to points by L1 or minimax linear
// programming and reports every error metric of each fit.
//
// Run without arguments it fits the built-in demonstration data:
//
//	lpfit
//	lpfit --point 0,0 --point 1,1 --point 2,4 --degree 2 --objective minimax
//	lpfit --input points.lpfd --basis chebyshev --time-limit 5s
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
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "lpfit:", err)
		os.Exit(1)
	}
}
