package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestStreamTextNesting(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelFile, FormatText)
	ctx := WithTracer(context.Background(), tr)

	ctx, phase := Start(ctx, ScopePhase, "structure")
	_, file := Start(ctx, ScopeFile, "file:src/main.fire")
	file.WithExtra("tokens", "12").End("")
	phase.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "    → file:src/main.fire") {
		t.Errorf("file span must be indented under the phase: %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "{tokens=12}") {
		t.Errorf("extra missing: %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "← structure (ok)") {
		t.Errorf("unexpected end line: %q", lines[3])
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelPhase, FormatText))

	ctx, phase := Start(ctx, ScopePhase, "discover")
	_, file := Start(ctx, ScopeFile, "file:x")
	file.End("")
	phase.End("")

	if strings.Contains(buf.String(), "file:x") {
		t.Fatalf("file scope must be filtered at phase level:\n%s", buf.String())
	}
	if file.ID() != 0 {
		t.Fatalf("filtered span must be inert")
	}
}

func TestNDJSONParentLinks(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelFile, FormatNDJSON))
	ctx, root := Start(ctx, ScopeDriver, "build")
	Point(ctx, ScopePhase, "cache-hit", "src/a.fire")
	root.End("")

	var events []jsonEvent
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var ev jsonEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("bad json %q: %v", line, err)
		}
		events = append(events, ev)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events", len(events))
	}
	if events[1].Kind != "point" || events[1].ParentID != events[0].SpanID {
		t.Fatalf("point must be parented to the root span: %+v", events[1])
	}
}

func TestRingWrapsAndDumps(t *testing.T) {
	r := NewRingTracer(2, LevelFile)
	for _, name := range []string{"a", "b", "c"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopePhase, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	multi, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := Ring(multi); !ok {
		t.Fatal("ring must be reachable through the multi tracer")
	}
}

func TestParseFlags(t *testing.T) {
	if l, err := ParseLevel("FILE"); err != nil || l != LevelFile {
		t.Fatalf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("unknown level must fail")
	}
	if m, err := ParseMode("ring"); err != nil || m != ModeRing {
		t.Fatalf("ParseMode = %v, %v", m, err)
	}
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatal("LevelOff must give the nop tracer")
	}
}
