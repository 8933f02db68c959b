// Package net shares a live, read-only mirror of an annotation session on
// the local network.
package net

import (
	"LocalAnnotator/internal/applog"
	"LocalAnnotator/internal/state"
)

var log = applog.WithComponent("net")

type MessageType string

const MsgSnapshot MessageType = "snapshot"

// Message is the wire format on the mirror websocket, one JSON object per
// frame.
type Message struct {
	Type     MessageType     `json:"type"`
	Snapshot *state.Snapshot `json:"snapshot,omitempty"`
}
