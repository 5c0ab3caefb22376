package domain

import "strings"

// ParseCommandArgs drops the leading command word and returns the rest, whitespace collapsed to single spaces.
func ParseCommandArgs(args string) string {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return ""
	}

	return strings.Join(fields[1:], " ")
}

// ParseCommand returns the lowercased command word, without any @botname suffix.
func ParseCommand(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return ""
	}

	name, _, _ := strings.Cut(fields[0], "@")
	return strings.ToLower(name)
}
