package gelf

import (
	"encoding/json"
	"net"
	"os"
	"strings"
	"time"
)

// Writer sends GELF messages over UDP and implements io.Writer so it can sit
// behind a slog JSON handler via io.MultiWriter.
type Writer struct {
	conn     net.Conn
	hostname string
	service  string
}

// New creates a GELF UDP writer connected to addr (e.g. "172.17.0.1:12201").
func New(addr, service string) (*Writer, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = service + "-server"
	}

	return &Writer{conn: conn, hostname: hostname, service: service}, nil
}

// Write implements io.Writer. Each call carries one slog JSON record; its
// msg becomes short_message and the remaining attributes become GELF
// additional fields. Lines that are not JSON are sent verbatim.
func (w *Writer) Write(p []byte) (int, error) {
	payload, err := json.Marshal(w.message(p))
	if err != nil {
		return len(p), nil // don't fail the log call
	}
	// Fire-and-forget
	w.conn.Write(payload)
	return len(p), nil
}

func (w *Writer) Close() error {
	return w.conn.Close()
}

func (w *Writer) message(p []byte) map[string]any {
	line := strings.TrimRight(string(p), "\n")
	msg := map[string]any{
		"version":       "1.1",
		"host":          w.hostname,
		"short_message": line,
		"timestamp":     float64(time.Now().UnixNano()) / 1e9,
		"level":         6, // Informational
		"_service":      w.service,
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return msg
	}
	if m, ok := rec["msg"].(string); ok {
		msg["short_message"] = m
	}
	if lvl, ok := rec["level"].(string); ok {
		msg["level"] = syslogLevel(lvl)
	}
	for k, v := range rec {
		switch k {
		case "msg", "level", "time":
			continue
		case "id":
			// _id is reserved by GELF.
			k = "record_id"
		}
		msg["_"+k] = v
	}
	return msg
}

func syslogLevel(slogLevel string) int {
	switch strings.ToUpper(slogLevel) {
	case "ERROR":
		return 3
	case "WARN":
		return 4
	case "DEBUG":
		return 7
	}
	return 6
}
