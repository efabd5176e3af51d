// Package history provides shell history file parsing and query-context
// capture for the recall database.
package history

import "os"

// SessionEnvVar carries the shell session ID injected by `recall init`.
const SessionEnvVar = "RECALL_SESSION_ID"

// Context identifies where a query is issued from. Filter modes use it to
// scope results to the current host, session, or directory.
type Context struct {
	Hostname  string
	SessionID string
	CWD       string
}

// CurrentContext captures the context of the running process.
func CurrentContext() Context {
	hostname, _ := os.Hostname()
	cwd, _ := os.Getwd()
	return Context{
		Hostname:  hostname,
		SessionID: os.Getenv(SessionEnvVar),
		CWD:       cwd,
	}
}
