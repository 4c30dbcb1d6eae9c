// ABOUTME: Error unwrapping for user-visible surfacing of RPC failures
// ABOUTME: Prefers the server's data.message, then the error string, then a fallback

package rpc

import "errors"

// UserMessage extracts the best displayable message from an RPC call
// failure: the server's structured data.message when present, then the
// error's own message, and finally the caller's localized fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		if rpcErr.Data != nil && rpcErr.Data.Message != "" {
			return rpcErr.Data.Message
		}
		if rpcErr.Message != "" {
			return rpcErr.Message
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
