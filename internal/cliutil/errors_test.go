package cliutil

import (
	"errors"
	"strings"
	"testing"
)

func TestPrintableErrorAttachesHelpMessage(t *testing.T) {
	err := NewConnectionFailed()
	got := PrintableError(err)
	if !strings.Contains(got, "connection failed") {
		t.Fatalf("PrintableError = %q, want it to contain the display string", got)
	}
	if !strings.Contains(got, "Ensure the server is running") {
		t.Fatalf("PrintableError = %q, want the help suggestion appended", got)
	}
}

func TestPrintableErrorResponseKindHasNoHelp(t *testing.T) {
	err := NewResponse("server said: %s", "bad request")
	got := PrintableError(err)
	if got != "server said: bad request" {
		t.Fatalf("PrintableError = %q, want exactly the response message", got)
	}
}

func TestPrintableErrorPassesThroughPlainErrors(t *testing.T) {
	err := errors.New("boom")
	if got := PrintableError(err); got != "boom" {
		t.Fatalf("PrintableError = %q, want %q", got, "boom")
	}
}
