package domain

import "pbl/internal/core/intent"

// AskInput is a typed or transcribed command
type AskInput struct {
	Text string `json:"text" validate:"required,min=1,max=2000" example:"set reminder for 10am for study session"`
}

// AskResult is the reply to one command
type AskResult struct {
	Intent intent.Intent `json:"intent" example:"reminder"`
	Reply  string        `json:"reply"`
}

// ClassifyResult explains a classification without generating a reply
type ClassifyResult struct {
	Intent intent.Intent `json:"intent" example:"greeting"`
	Hits   []intent.Hit  `json:"hits"`
}

// QuickResult is the reply to a quick command with the text it expanded to
type QuickResult struct {
	Command string        `json:"command" example:"help"`
	Intent  intent.Intent `json:"intent" example:"help"`
	Reply   string        `json:"reply"`
}
