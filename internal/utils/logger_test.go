package utils

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	out := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(out)
	fn()
	return buf.String()
}

func TestLogEventTagAndRequestID(t *testing.T) {
	line := captureLog(t, func() {
		LogEvent("req-1", "bookings", "create", "booking_id=5")
	})
	if !strings.Contains(line, "[BOOKINGS.create]") {
		t.Fatalf("missing module.action tag: %q", line)
	}
	if !strings.Contains(line, "request_id=req-1") {
		t.Fatalf("missing request id: %q", line)
	}
	if !strings.Contains(line, "booking_id=5") {
		t.Fatalf("missing message: %q", line)
	}
}

func TestLogEventEmptyRequestID(t *testing.T) {
	line := captureLog(t, func() {
		LogEvent("", "trips", "delete", "trip_id=1")
	})
	if !strings.Contains(line, "request_id=-") {
		t.Fatalf("empty request id should print as dash: %q", line)
	}
}
