// ABOUTME: User-facing toast messages for submission failures
// ABOUTME: Server error detail takes precedence; these are the fallbacks

package submit

const (
	msgMissingModel         = "Select a model before sending"
	msgMissingAgent         = "Select an agent before sending"
	msgWorktreeCreateFailed = "Failed to create worktree"
	msgWorktreeFailed       = "Worktree setup failed"
	msgSessionCreateFailed  = "Failed to create session"
	msgCommandFailed        = "Command failed"
	msgShellFailed          = "Shell command failed"
	msgSendFailed           = "Failed to send message"
	msgStillPreparing       = "Workspace is still being prepared, please try again"
)
