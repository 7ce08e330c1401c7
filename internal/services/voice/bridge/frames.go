package bridge

import "pbl/internal/services/voice/session"

// Client frame types
const (
	InHello       = "hello"
	InToggle      = "toggle"
	InStop        = "stop"
	InSay         = "say"
	InQuick       = "quick"
	InReadNotices = "read_notices"
	InResult      = "result"
	InError       = "error"
	InEnd         = "end"
	InSpeechError = "speech_error"
)

// Server frame types
const (
	OutWelcome     = "welcome"
	OutListen      = "listen"
	OutSpeak       = "speak"
	OutSpeakCancel = "speak_cancel"
	OutMessage     = "message"
)

// inFrame is every client frame; unused fields stay zero
type inFrame struct {
	Type        string `json:"type"`
	Text        string `json:"text,omitempty"`
	Name        string `json:"name,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Recognition bool   `json:"recognition,omitempty"`
	Synthesis   bool   `json:"synthesis,omitempty"`
}

type welcomeFrame struct {
	Type    string `json:"type"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type listenFrame struct {
	Type string `json:"type"`
	On   bool   `json:"on"`
}

type speakFrame struct {
	Type string `json:"type"`
	session.Utterance
}

type cancelFrame struct {
	Type string `json:"type"`
}

type messageFrame struct {
	Type string       `json:"type"`
	Role session.Role `json:"role"`
	Text string       `json:"text"`
}
