package tui

import "askmira/internal/models"

// Messages passed through the Bubbletea update loop.

// authResultMsg reports the outcome of a login or register attempt.
type authResultMsg struct {
	registered bool
	username   string
	token      string
	err        error
}

// answerMsg carries the assistant's reply to one question. Generation
// failures are absorbed into the answer text before this message is sent, so
// err is only set for issues worth showing separately.
type answerMsg struct {
	question string
	answer   string
}

// historyMsg carries a restored transcript.
type historyMsg struct {
	messages []models.ChatMessage
	err      error
}

// regionsMsg lists the region prefixes available for browsing.
type regionsMsg struct {
	regions []string
	err     error
}

// countriesMsg lists the country documents under one region.
type countriesMsg struct {
	region    string
	countries []string
	err       error
}

// documentMsg carries the content of one country profile.
type documentMsg struct {
	title   string
	content string
	err     error
}
