package cli

import (
	"context"
	"os"

	"github.com/gabapcia/minichain/internal/demo"
	"github.com/gabapcia/minichain/internal/miner"
	"github.com/gabapcia/minichain/internal/shell"

	"github.com/urfave/cli/v3"
)

// Ledger is the ledger surface needed by the demo and shell commands.
type Ledger interface {
	demo.Ledger
	shell.Ledger
}

// Puzzle solves proofs for the demo and search commands.
type Puzzle interface {
	demo.Solver
	SearchN(ctx context.Context, lastProof, n uint64) (uint64, error)
}

// Run initializes and executes the minichain CLI application.
//
// It registers all available commands, including:
//
//   - `demo`: Runs the fixed demo script and prints the chain at each stage.
//   - `shell`: Starts the interactive session.
//   - `search`: Prints the proof accepted after a given last proof.
//
// All commands share l, so a process only ever works on one chain.
func Run(ctx context.Context, l Ledger, p Puzzle, m miner.Service) error {
	return newApp(l, p, m).Run(ctx, os.Args)
}

func newApp(l Ledger, p Puzzle, m miner.Service) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "minichain",
		Description:           "Command-line interface for a toy proof-of-work ledger.",
		Usage:                 "minichain [command] [flags]",
		Commands: []*cli.Command{
			demoCommand(l, p),
			shellCommand(l, m),
			searchCommand(p),
		},
	}
}
