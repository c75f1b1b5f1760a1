// Package parser converts shell input into Command structs.
// Deliberately simple: aliases and a few phrase rewrites, no grammar.
package parser

import (
	"strings"

	"github.com/nathoo/decorum/types"
)

// Verbs lists the canonical verbs in help order.
var Verbs = []string{
	"new", "players", "difficulty", "seed",
	"show", "rules", "moves", "verify", "stats",
	"export", "help", "quit",
}

var verbAliases = map[string]string{
	// Generation
	"generate": "new",
	"gen":      "new",
	"g":        "new",
	"deal":     "new",
	"reroll":   "new",

	// Settings
	"p":     "players",
	"d":     "difficulty",
	"diff":  "difficulty",
	"level": "difficulty",
	"tier":  "difficulty",

	// Boards
	"board": "show",
	"b":     "show",
	"look":  "show",
	"view":  "show",
	"l":     "show",

	// Hands
	"r":          "rules",
	"hand":       "rules",
	"hands":      "rules",
	"player":     "rules",
	"conditions": "rules",

	// Log and checks
	"m":     "moves",
	"log":   "moves",
	"path":  "moves",
	"v":     "verify",
	"check": "verify",
	"s":     "stats",
	"info":  "stats",
	"save":  "export",
	"dump":  "export",
	"json":  "export",

	// Miscellaneous
	"h":    "help",
	"?":    "help",
	"q":    "quit",
	"exit": "quit",
	"bye":  "quit",
}

// Board names that are standalone shortcuts for "show <board>".
var boardNames = map[string]string{
	"target":   "target",
	"solution": "target",
	"goal":     "target",
	"start":    "start",
	"initial":  "start",
}

var fillers = map[string]bool{
	"the": true, "a": true, "an": true,
	"board": true, "to": true, "of": true,
}

// Parse converts a raw input line into a Command.
func Parse(input string) types.Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Command{}
	}

	words := strings.Fields(strings.ToLower(input))

	if len(words) == 1 {
		if b, ok := boardNames[words[0]]; ok {
			return types.Command{Verb: "show", Args: []string{b}}
		}
	}

	words = expandPhrases(words)

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	args := stripFillers(words[1:])
	if verb == "show" && len(args) > 0 {
		if b, ok := boardNames[args[0]]; ok {
			args[0] = b
		}
	}
	if len(args) == 0 {
		args = nil
	}
	return types.Command{Verb: verb, Args: args}
}

// expandPhrases rewrites "look at", "new game", "set seed" and the like.
func expandPhrases(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "look", "show":
		if words[1] == "at" {
			return append([]string{"show"}, words[2:]...)
		}
	case "new", "start":
		if words[1] == "game" || words[1] == "scenario" {
			return append([]string{"new"}, words[2:]...)
		}
	case "set":
		return words[1:]
	case "play":
		if words[1] == "as" {
			return append([]string{"rules"}, words[2:]...)
		}
	}

	return words
}

// stripFillers removes words that never carry an argument.
func stripFillers(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !fillers[w] {
			result = append(result, w)
		}
	}
	return result
}

// Rest joins the arguments after the first n, for multi-word names such as
// "living room".
func Rest(c types.Command, n int) string {
	if n >= len(c.Args) {
		return ""
	}
	return strings.Join(c.Args[n:], " ")
}
