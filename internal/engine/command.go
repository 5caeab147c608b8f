package engine

import (
	"strings"

	"github.com/buildkite/shellwords"
)

// Command is one player input line after normalization.
type Command struct {
	Raw  string
	Text string
	Args []string
}

// Normalize trims, lowercases and collapses internal whitespace.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// ParseCommand normalizes raw and splits it into arguments. Quoted arguments
// are kept together; an unbalanced quote falls back to plain field splitting.
func ParseCommand(raw string) Command {
	text := Normalize(raw)
	args, err := shellwords.SplitPosix(text)
	if err != nil {
		args = strings.Fields(text)
	}
	return Command{Raw: raw, Text: text, Args: args}
}

func (c Command) Verb() string {
	return c.Arg(0)
}

// Arg returns the i-th argument or "".
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// Rest joins the arguments from index i on.
func (c Command) Rest(i int) string {
	if i >= len(c.Args) {
		return ""
	}
	return strings.Join(c.Args[i:], " ")
}

// HasPrefix reports whether the leading arguments equal words.
func (c Command) HasPrefix(words ...string) bool {
	if len(c.Args) < len(words) {
		return false
	}
	for i, w := range words {
		if c.Args[i] != w {
			return false
		}
	}
	return true
}
