// ABOUTME: CLI entry point for the atelier workspace client
// ABOUTME: Parses flags, loads settings, connects to the workspace server, runs the TUI

package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/term"

	"github.com/marigold-ai/atelier/internal/commands"
	"github.com/marigold-ai/atelier/internal/config"
	atlog "github.com/marigold-ai/atelier/internal/log"
	"github.com/marigold-ai/atelier/internal/pathresolve"
	"github.com/marigold-ai/atelier/internal/rpc"
	"github.com/marigold-ai/atelier/internal/state"
	"github.com/marigold-ai/atelier/internal/submit"
	_ "github.com/marigold-ai/atelier/internal/termfix"
	"github.com/marigold-ai/atelier/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("atelier %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args cliArgs) error {
	if args.verbose {
		atlog.SetLevel(atlog.LevelDebug)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("atelier requires an interactive terminal")
	}

	dir := args.dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		dir = cwd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving directory %s: %w", dir, err)
	}

	settings, err := config.Load(dir)
	if err != nil {
		return err
	}
	if args.server != "" {
		settings.ServerAddr = args.server
	}
	if args.model != "" {
		settings.Model = args.model
	}
	if args.agent != "" {
		settings.Agent = args.agent
	}

	home, _ := os.UserHomeDir()

	pool := newClientPool(settings.ServerAddr)
	defer pool.Close()

	base, err := pool.get(dir)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", settings.ServerAddr, err)
	}

	resolver := pathresolve.NewResolver(dir, home, &rpcLister{base}, &rpcFinder{base})

	deps := tui.AppDeps{
		Directory:   dir,
		Home:        home,
		Settings:    settings,
		Clients:     pool.factory(),
		Resolver:    resolver,
		Worktrees:   state.NewWorktreeStates(),
		Store:       state.NewMemoryStore(),
		Busy:        state.NewBusy(),
		Commands:    commands.NewRegistry(settings.Commands...).Names(),
		HistoryFile: config.HistoryFile(),
	}

	atlog.Info("atelier starting in %s (server %s)", dir, settings.ServerAddr)
	return tui.Run(deps)
}

// clientPool hands out one connection per working directory.
type clientPool struct {
	addr    string
	mu      sync.Mutex
	clients map[string]*rpc.Client
}

func newClientPool(addr string) *clientPool {
	return &clientPool{addr: addr, clients: make(map[string]*rpc.Client)}
}

func (p *clientPool) get(directory string) (*rpc.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.clients[directory]; ok {
		return c, nil
	}
	conn, err := net.Dial("tcp", p.addr)
	if err != nil {
		return nil, err
	}
	c := rpc.NewClient(conn, directory)
	p.clients[directory] = c
	return c, nil
}

// factory adapts the pool to the submission machine. Dial failures
// surface as call errors from a dead client rather than a panic.
func (p *clientPool) factory() submit.ClientFactory {
	return func(directory string) submit.SessionRPC {
		c, err := p.get(directory)
		if err != nil {
			atlog.Error("connecting client for %s: %v", directory, err)
			return rpc.NewClient(deadConn{err}, directory)
		}
		return c
	}
}

func (p *clientPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range p.clients {
		_ = c.Close()
	}
}

// deadConn fails every operation with the dial error.
type deadConn struct{ err error }

func (d deadConn) Read([]byte) (int, error)  { return 0, d.err }
func (d deadConn) Write([]byte) (int, error) { return 0, d.err }
func (d deadConn) Close() error              { return nil }

// rpcLister adapts the RPC files.list call to the resolver.
type rpcLister struct{ c *rpc.Client }

func (l *rpcLister) List(ctx context.Context, directory, path string) ([]pathresolve.Entry, error) {
	entries, err := l.c.List(ctx, directory, path)
	if err != nil {
		return nil, err
	}
	out := make([]pathresolve.Entry, len(entries))
	for i, e := range entries {
		out[i] = pathresolve.Entry{Name: e.Name, Type: e.Type, Absolute: e.Absolute}
	}
	return out, nil
}

// rpcFinder adapts the RPC files.find call to the resolver.
type rpcFinder struct{ c *rpc.Client }

func (f *rpcFinder) Find(ctx context.Context, directory, query, entryType string, limit int) ([]string, error) {
	return f.c.Find(ctx, directory, query, entryType, limit)
}
