// Package chatbot implements the storefront's canned-answer assistant.
// Replies come from an ordered keyword table: the first rule with a
// keyword found in the message wins, and unmatched messages get a
// topic-list fallback. There is no model behind this, by construction.
package chatbot

import "strings"

type rule struct {
	keywords []string
	reply    string
}

type Bot struct {
	greeting string
	fallback string
	rules    []rule
}

// Greeting returns the message shown before the user says anything.
func (b *Bot) Greeting() string {
	return b.greeting
}

// Reply picks the response for one user message. Matching is
// case-insensitive substring containment, first rule wins.
func (b *Bot) Reply(message string) string {
	input := strings.ToLower(message)
	for _, r := range b.rules {
		for _, kw := range r.keywords {
			if strings.Contains(input, kw) {
				return r.reply
			}
		}
	}
	return b.fallback
}
