// Package shell implements the interactive, line-oriented front end of the
// ledger. One session owns one ledger for its whole lifetime; every command is
// dispatched on the caller goroutine, so the ledger is never mutated
// concurrently.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabapcia/minichain/internal/ledger"
	"github.com/gabapcia/minichain/internal/pkg/logger"
	"github.com/gabapcia/minichain/internal/pkg/types"
	"github.com/gabapcia/minichain/internal/pkg/x/chflow"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

// Ledger is the subset of *ledger.Ledger used by the shell.
type Ledger interface {
	AdmitTransaction(ctx context.Context, sender, recipient string, amount decimal.Decimal) (int, error)
	Accounts() types.Set[string]
	Balances() map[string]decimal.Decimal
	Pending() []ledger.Transaction
	String() string
}

// Miner seals the pending pool into a new block.
type Miner interface {
	Mine(ctx context.Context) (ledger.Block, error)
}

var _ Ledger = (*ledger.Ledger)(nil)

// errQuit is returned by dispatch when the user asks to leave.
var errQuit = errors.New("quit")

// Session reads commands from in and writes their results to out.
type Session struct {
	ledger Ledger
	miner  Miner
	in     io.Reader
	out    io.Writer
}

// New creates a session over l. Blocks are created through m.
func New(l Ledger, m Miner, in io.Reader, out io.Writer) *Session {
	return &Session{
		ledger: l,
		miner:  m,
		in:     in,
		out:    out,
	}
}

// readLines scans in on its own goroutine until ctx ends. The channel is
// closed on EOF; a scan error is delivered on errCh first.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			if err := chflow.Send(ctx, lines, scanner.Text()); err != nil {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			errCh <- err
		}
	}()

	return lines, errCh
}

// Run processes commands until the input ends, the user quits, or ctx is done.
// Command failures are reported to the user and never end the session.
func (s *Session) Run(ctx context.Context) error {
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, errCh := readLines(readCtx, s.in)

	s.print(pterm.DefaultHeader.Sprint("minichain shell - type 'help' for commands"))
	for {
		s.prompt()

		line, err := chflow.Receive(ctx, lines)
		switch {
		case errors.Is(err, chflow.ErrClosed):
			select {
			case err := <-errCh:
				return err
			default:
				return nil
			}
		case err != nil:
			// context done
			return nil
		}

		if err := s.dispatch(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}

			logger.Debug(ctx, "shell command failed", "command", line, "error", err)
			s.print(pterm.Error.Sprintln(err.Error()))
		}
	}
}

func (s *Session) prompt() {
	fmt.Fprint(s.out, "> ")
}

func (s *Session) print(text string) {
	fmt.Fprint(s.out, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(s.out)
	}
}

// dispatch runs a single command line.
func (s *Session) dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
	case "tx", "transaction":
		return s.newTransaction(ctx, args)
	case "pending":
		s.print(renderPending(s.ledger.Pending()))
	case "balances":
		s.print(renderBalances(s.ledger.Balances()))
	case "mine", "block":
		return s.createBlock(ctx)
	case "chain":
		s.print(s.ledger.String())
	case "help":
		s.print(helpText)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, type 'help' for the list of commands", cmd)
	}

	return nil
}

// newTransaction handles `tx <sender> <recipient> <amount>`. Senders that never
// appeared in a sealed block are rejected before reaching the ledger.
func (s *Session) newTransaction(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: tx <sender> <recipient> <amount>")
	}

	sender, recipient := args[0], args[1]
	amount, err := decimal.NewFromString(args[2])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[2], err)
	}

	if !s.ledger.Accounts().Has(sender) {
		return fmt.Errorf("sender %s must have a balance in the blockchain", sender)
	}

	index, err := s.ledger.AdmitTransaction(ctx, sender, recipient, amount)
	if err != nil {
		return err
	}

	s.print(pterm.Success.Sprintfln("New transaction added, it will be sealed in block %d", index))
	return nil
}

// createBlock mines the pending pool into a new block.
func (s *Session) createBlock(ctx context.Context) error {
	block, err := s.miner.Mine(ctx)
	if err != nil {
		return err
	}

	s.print(pterm.Success.Sprintfln("Block %d sealed with proof %d (%d transactions)", block.Index, block.Proof, len(block.Transactions)))
	return nil
}

const helpText = `Commands:
  tx <sender> <recipient> <amount>  admit a transfer into the pending pool
  pending                           list transactions waiting for a block
  balances                          show sealed balances per account
  mine                              search a proof, credit the miner and seal a block
  chain                             print the whole chain
  help                              show this message
  quit                              leave the shell`
