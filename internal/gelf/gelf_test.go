package gelf

import (
	"encoding/json"
	"net"
	"testing"
	"time"
)

func TestWriterSendsSlogRecord(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer pc.Close()

	w, err := New(pc.LocalAddr().String(), "fleetdocs")
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	defer w.Close()

	line := `{"time":"2026-01-01T00:00:00Z","level":"WARN","msg":"trigger work failed","vessel_id":"v1","id":"x"}` + "\n"
	if n, err := w.Write([]byte(line)); err != nil || n != len(line) {
		t.Fatalf("write: n=%d err=%v", n, err)
	}

	buf := make([]byte, 4096)
	pc.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf[:n], &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["short_message"] != "trigger work failed" {
		t.Fatalf("short_message = %v", got["short_message"])
	}
	if got["level"] != float64(4) {
		t.Fatalf("level = %v, want 4", got["level"])
	}
	if got["_vessel_id"] != "v1" || got["_record_id"] != "x" || got["_service"] != "fleetdocs" {
		t.Fatalf("additional fields missing: %v", got)
	}
}

func TestWriterPassesPlainLines(t *testing.T) {
	w := &Writer{hostname: "h", service: "fleetdocs"}
	msg := w.message([]byte("plain text line\n"))
	if msg["short_message"] != "plain text line" {
		t.Fatalf("short_message = %v", msg["short_message"])
	}
	if msg["level"] != 6 {
		t.Fatalf("level = %v", msg["level"])
	}
}
