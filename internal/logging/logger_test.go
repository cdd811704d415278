package logging

import (
	"bytes"
	"testing"
)

func TestTracefSilentUnlessVerbose(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Tracef("exiftool %s", "-s")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestTracefIndentsMultilinePayload(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Tracef("stdout:\nMIMEType: image/jpeg\n")

	want := "Trace: stdout:\n       MIMEType: image/jpeg\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestInfofWithoutWriterDoesNothing(t *testing.T) {
	Logger{Verbose: true}.Infof("ignored")
}
