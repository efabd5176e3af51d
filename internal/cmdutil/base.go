package cmdutil

import (
	"strings"
	"unicode"

	"github.com/google/shlex"
)

// envAssignment reports whether a token looks like VAR=value.
func envAssignment(tok string) bool {
	eq := strings.IndexByte(tok, '=')
	if eq <= 0 {
		return false
	}
	for _, r := range tok[:eq] {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// BaseCommand returns the program a command line invokes, skipping leading
// environment assignments and sudo/env wrappers. Quoting is respected via
// shlex, so `FOO="a b" sudo git status` yields "git". Returns "" when the
// command cannot be tokenized.
func BaseCommand(cmd string) string {
	toks, err := shlex.Split(cmd)
	if err != nil {
		return ""
	}
	for _, tok := range toks {
		if envAssignment(tok) {
			continue
		}
		switch tok {
		case "sudo", "env", "nohup", "time":
			continue
		}
		// Strip any path prefix: /usr/bin/git -> git.
		if i := strings.LastIndexByte(tok, '/'); i >= 0 {
			tok = tok[i+1:]
		}
		return tok
	}
	return ""
}
