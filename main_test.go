package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"LocalAnnotator/internal/config"
	boardnet "LocalAnnotator/internal/net"
	"LocalAnnotator/internal/state"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestStartSharingStopsWithContext(t *testing.T) {
	cfg := config.Default()
	cfg.Share.Port = freePort(t)
	cfg.Share.Advertise = false

	store := state.NewStore()
	store.Append(state.Rect{X: 10, Y: 10, Width: 50, Height: 30, Label: "7"})

	ctx, cancel := context.WithCancel(context.Background())
	link, stopped := startSharing(ctx, cfg, store)
	if !strings.HasPrefix(link, boardnet.LinkScheme) {
		t.Errorf("unexpected share link %q", link)
	}

	url := fmt.Sprintf("http://127.0.0.1:%d/summary", cfg.Share.Port)
	var body []byte
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			body, _ = io.ReadAll(resp.Body)
			resp.Body.Close()
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if !bytes.Contains(body, []byte("[07]")) {
		t.Errorf("summary not served: %q", body)
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(3 * time.Second):
		t.Fatal("sharing did not stop after cancel")
	}
	if _, err := http.Get(url); err == nil {
		t.Error("mirror still serving after stop")
	}
}
