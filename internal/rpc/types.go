// ABOUTME: Wire types for the workspace server boundary (JSONL protocol)
// ABOUTME: Requests and responses correlate by id; errors carry optional data.message

package rpc

import "encoding/json"

// Request is a single outbound call.
type Request struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is a single inbound reply.
type Response struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
}

// ErrorData is the optional structured payload on a server error.
type ErrorData struct {
	Message string `json:"message,omitempty"`
}

// Error is a server-reported failure.
type Error struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    *ErrorData `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Method names understood by the workspace server.
const (
	MethodFilesList      = "files.list"
	MethodFilesFind      = "files.find"
	MethodSessionCreate  = "session.create"
	MethodSessionShell   = "session.shell"
	MethodSessionCommand = "session.command"
	MethodSessionPrompt  = "session.prompt_async"
	MethodSessionAbort   = "session.abort"
	MethodWorktreeCreate = "worktree.create"
)

// FilesListParams asks for the entries of a directory.
type FilesListParams struct {
	Directory string `json:"directory"`
	Path      string `json:"path"`
}

// FileEntry is one directory entry.
type FileEntry struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Absolute string `json:"absolute"`
}

// FilesFindParams asks for a fuzzy file/directory search.
type FilesFindParams struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
	Type      string `json:"type,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// SessionCreateResult carries the new session's identity.
type SessionCreateResult struct {
	SessionID string `json:"sessionID"`
	Directory string `json:"directory"`
}

// ShellParams runs a shell command inside a session.
type ShellParams struct {
	SessionID string `json:"sessionID"`
	Command   string `json:"command"`
}

// CommandParams dispatches a named custom command.
type CommandParams struct {
	SessionID string `json:"sessionID"`
	Name      string `json:"name"`
	Arguments string `json:"arguments,omitempty"`
}

// PromptPart is one wire part of a prompt request.
type PromptPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Path     string `json:"path,omitempty"`
	Name     string `json:"name,omitempty"`
	Mime     string `json:"mime,omitempty"`
	Filename string `json:"filename,omitempty"`
	URL      string `json:"url,omitempty"`
}

// PromptParams sends a composed prompt for asynchronous processing.
type PromptParams struct {
	SessionID string       `json:"sessionID"`
	MessageID string       `json:"messageID"`
	Model     string       `json:"model,omitempty"`
	Agent     string       `json:"agent,omitempty"`
	Parts     []PromptPart `json:"parts"`
}

// AbortParams aborts a session's in-flight turn.
type AbortParams struct {
	SessionID string `json:"sessionID"`
}

// WorktreeCreateParams requests a new worktree for a directory.
type WorktreeCreateParams struct {
	Directory string `json:"directory"`
}

// WorktreeCreateResult carries the created worktree directory.
type WorktreeCreateResult struct {
	Directory string `json:"directory"`
}
