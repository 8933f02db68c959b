package net

import (
	"context"
	"fmt"

	"LocalAnnotator/internal/state"

	"github.com/gorilla/websocket"
)

// Watch connects to the mirror behind link and calls onSnapshot for every
// snapshot until ctx is done or the host goes away.
func Watch(ctx context.Context, link string, onSnapshot func(state.Snapshot)) error {
	addr, err := ParseLink(link)
	if err != nil {
		return err
	}
	return watchURL(ctx, "ws://"+addr+"/ws", onSnapshot)
}

func watchURL(ctx context.Context, url string, onSnapshot func(state.Snapshot)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	log.Info("[CLIENT] connected", "url", url)
	var last uint64
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("disconnected from host: %w", err)
		}
		if msg.Type != MsgSnapshot || msg.Snapshot == nil {
			continue
		}
		// a publish encoded before the initial snapshot can arrive after it
		if msg.Snapshot.Lamport < last {
			continue
		}
		last = msg.Snapshot.Lamport
		onSnapshot(*msg.Snapshot)
	}
}
