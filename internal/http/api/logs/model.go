package logs

import (
	"github.com/leadbotio/leadbot/internal/platform/timeutil"
)

// LogLine represents one captured line of bot output.
type LogLine struct {
	Seq  uint64        `json:"seq"  doc:"Monotonic sequence number" example:"1042"`
	Text string        `json:"text" doc:"Raw output line"           example:"processed 12 listings"`
	At   timeutil.Time `json:"at"   doc:"Time the line was captured"`
}

// Keepalive is the heartbeat event on the log stream.
type Keepalive struct {
	At timeutil.Time `json:"at" doc:"Heartbeat time"`
}
