// ABOUTME: JSONL RPC client for the workspace server boundary
// ABOUTME: One reader goroutine correlates responses to calls by id

package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/marigold-ai/atelier/internal/log"
)

// Client speaks the JSONL protocol over a bidirectional stream. A
// Client is bound to one working directory; the submission flow
// constructs a fresh client when it redirects calls to a new worktree.
type Client struct {
	directory string

	writeMu sync.Mutex
	conn    io.ReadWriteCloser

	mu      sync.Mutex
	pending map[string]chan Response
	closed  bool
}

// NewClient wraps an established connection, bound to directory, and
// starts the response reader.
func NewClient(conn io.ReadWriteCloser, directory string) *Client {
	c := &Client{
		directory: directory,
		conn:      conn,
		pending:   make(map[string]chan Response),
	}
	go c.readLoop()
	return c
}

// Directory returns the working directory this client is bound to.
func (c *Client) Directory() string { return c.directory }

// Close tears down the connection and fails all outstanding calls.
func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.mu.Unlock()
	return c.conn.Close()
}

func (c *Client) readLoop() {
	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)
	for scanner.Scan() {
		var resp Response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			log.Warn("rpc: dropping malformed response: %v", err)
			continue
		}
		c.mu.Lock()
		ch, ok := c.pending[resp.ID]
		if ok {
			delete(c.pending, resp.ID)
		}
		c.mu.Unlock()
		if ok {
			ch <- resp
		}
	}
	c.mu.Lock()
	c.closed = true
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.mu.Unlock()
}

// Call issues a request and decodes its result into out (out may be
// nil for calls without a result). Server errors return the *Error as
// the call error.
func (c *Client) Call(ctx context.Context, method string, params, out any) error {
	var raw json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("encoding %s params: %w", method, err)
		}
		raw = data
	}
	req := Request{ID: uuid.NewString(), Method: method, Params: raw}

	ch := make(chan Response, 1)
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("rpc: client closed")
	}
	c.pending[req.ID] = ch
	c.mu.Unlock()

	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", method, err)
	}
	data = append(data, '\n')

	c.writeMu.Lock()
	_, err = c.conn.Write(data)
	c.writeMu.Unlock()
	if err != nil {
		c.mu.Lock()
		delete(c.pending, req.ID)
		c.mu.Unlock()
		return fmt.Errorf("writing %s request: %w", method, err)
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return fmt.Errorf("rpc: connection closed during %s", method)
		}
		if resp.Error != nil {
			return resp.Error
		}
		if out != nil && len(resp.Result) > 0 {
			if err := json.Unmarshal(resp.Result, out); err != nil {
				return fmt.Errorf("decoding %s result: %w", method, err)
			}
		}
		return nil
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, req.ID)
		c.mu.Unlock()
		return ctx.Err()
	}
}

// List implements the directory-listing boundary.
func (c *Client) List(ctx context.Context, directory, path string) ([]FileEntry, error) {
	var entries []FileEntry
	err := c.Call(ctx, MethodFilesList, FilesListParams{Directory: directory, Path: path}, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Find implements the fuzzy find boundary.
func (c *Client) Find(ctx context.Context, directory, query, entryType string, limit int) ([]string, error) {
	var paths []string
	err := c.Call(ctx, MethodFilesFind, FilesFindParams{
		Directory: directory, Query: query, Type: entryType, Limit: limit,
	}, &paths)
	return paths, err
}

// CreateSession creates a new session bound to this client's directory.
func (c *Client) CreateSession(ctx context.Context) (SessionCreateResult, error) {
	var res SessionCreateResult
	err := c.Call(ctx, MethodSessionCreate, map[string]string{"directory": c.directory}, &res)
	return res, err
}

// Shell runs a shell command within a session.
func (c *Client) Shell(ctx context.Context, sessionID, command string) error {
	return c.Call(ctx, MethodSessionShell, ShellParams{SessionID: sessionID, Command: command}, nil)
}

// Command dispatches a named custom command.
func (c *Client) Command(ctx context.Context, sessionID, name, arguments string) error {
	return c.Call(ctx, MethodSessionCommand, CommandParams{
		SessionID: sessionID, Name: name, Arguments: arguments,
	}, nil)
}

// PromptAsync submits a composed prompt for asynchronous processing.
func (c *Client) PromptAsync(ctx context.Context, params PromptParams) error {
	return c.Call(ctx, MethodSessionPrompt, params, nil)
}

// Abort aborts a session's in-flight turn.
func (c *Client) Abort(ctx context.Context, sessionID string) error {
	return c.Call(ctx, MethodSessionAbort, AbortParams{SessionID: sessionID}, nil)
}

// CreateWorktree requests a new worktree for a directory.
func (c *Client) CreateWorktree(ctx context.Context, directory string) (string, error) {
	var res WorktreeCreateResult
	err := c.Call(ctx, MethodWorktreeCreate, WorktreeCreateParams{Directory: directory}, &res)
	return res.Directory, err
}
