package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gabapcia/minichain/internal/demo"
	"github.com/gabapcia/minichain/internal/miner"
	"github.com/gabapcia/minichain/internal/shell"

	"github.com/urfave/cli/v3"
)

// demoCommand returns a CLI command that runs the scripted walkthrough.
//
// Usage example:
//
//	minichain demo
func demoCommand(l Ledger, p Puzzle) *cli.Command {
	return &cli.Command{
		Name:        "demo",
		Description: "Admits a few transfers, mines two blocks and prints the chain and balances.",
		Usage:       "Runs the fixed demo script.",
		Action: func(ctx context.Context, c *cli.Command) error {
			return demo.Run(ctx, c.Root().Writer, l, p)
		},
	}
}

// shellCommand returns a CLI command that starts the interactive session. The
// session ends on EOF, on `quit`, or on SIGINT/SIGTERM.
//
// Usage example:
//
//	minichain shell
func shellCommand(l Ledger, m miner.Service) *cli.Command {
	return &cli.Command{
		Name:        "shell",
		Description: "Reads commands from standard input to admit transfers, mine blocks and inspect the chain.",
		Usage:       "Starts the interactive shell. Type 'help' once inside.",
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return shell.New(l, m, c.Root().Reader, c.Root().Writer).Run(ctx)
		},
	}
}

// searchCommand returns a CLI command that prints the first proof accepted
// after the given last proof.
//
// Usage example:
//
//	minichain search --last-proof 100 --max-iterations 1000
func searchCommand(p Puzzle) *cli.Command {
	return &cli.Command{
		Name:        "search",
		Description: "Searches the smallest proof accepted by the puzzle for a given last proof.",
		Usage:       "Prints the proof for --last-proof. Fails when --max-iterations is exhausted.",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:     "last-proof",
				Usage:    "Proof of the last sealed block",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:  "max-iterations",
				Usage: "Candidates to test before giving up, 0 uses the configured ceiling",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var (
				lastProof     = c.Uint64("last-proof")
				maxIterations = c.Uint64("max-iterations")

				proof uint64
				err   error
			)

			if maxIterations > 0 {
				proof, err = p.SearchN(ctx, lastProof, maxIterations)
			} else {
				proof, err = p.Search(ctx, lastProof)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(c.Root().Writer, proof)
			return err
		},
	}
}
