package ai

import (
	"strings"
	"testing"
)

func feedAll(t *testing.T, p *StreamParser, chunks ...string) string {
	t.Helper()
	var sb strings.Builder
	for _, c := range chunks {
		for _, delta := range p.Feed([]byte(c)) {
			sb.WriteString(delta)
		}
	}
	return sb.String()
}

func TestFeed_SingleCompleteLine(t *testing.T) {
	p := &StreamParser{}
	got := feedAll(t, p, "data: {\"choices\":[{\"delta\":{\"content\":\"hi\"}}]}\n")
	if got != "hi" {
		t.Errorf("content = %q, want %q", got, "hi")
	}
	if p.Done() {
		t.Error("parser reported done without [DONE] sentinel")
	}
}

func TestFeed_ArbitraryChunkBoundaries(t *testing.T) {
	line := "data: {\"choices\":[{\"delta\":{\"content\":\"hi\"}}]}\n"
	for cut := 1; cut < len(line); cut++ {
		p := &StreamParser{}
		got := feedAll(t, p, line[:cut], line[cut:])
		if got != "hi" {
			t.Errorf("cut at %d: content = %q, want %q", cut, got, "hi")
		}
	}
}

func TestFeed_MultipleEvents(t *testing.T) {
	p := &StreamParser{}
	got := feedAll(t, p,
		"data: {\"choices\":[{\"delta\":{\"content\":\"Hello\"}}]}\n",
		"data: {\"choices\":[{\"delta\":{\"content\":\", \"}}]}\ndata: {\"choices\":[{\"delta\":{\"content\":\"world\"}}]}\n",
	)
	if got != "Hello, world" {
		t.Errorf("content = %q, want %q", got, "Hello, world")
	}
}

func TestFeed_SkipsCommentsAndBlankLines(t *testing.T) {
	p := &StreamParser{}
	got := feedAll(t, p,
		": keep-alive\n\r\n\ndata: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n",
	)
	if got != "ok" {
		t.Errorf("content = %q, want %q", got, "ok")
	}
}

func TestFeed_CarriageReturnStripped(t *testing.T) {
	p := &StreamParser{}
	got := feedAll(t, p, "data: {\"choices\":[{\"delta\":{\"content\":\"crlf\"}}]}\r\n")
	if got != "crlf" {
		t.Errorf("content = %q, want %q", got, "crlf")
	}
}

func TestFeed_StopsAtDoneSentinel(t *testing.T) {
	p := &StreamParser{}
	got := feedAll(t, p,
		"data: {\"choices\":[{\"delta\":{\"content\":\"end\"}}]}\ndata: [DONE]\ndata: {\"choices\":[{\"delta\":{\"content\":\"ignored\"}}]}\n",
	)
	if got != "end" {
		t.Errorf("content = %q, want %q", got, "end")
	}
	if !p.Done() {
		t.Error("parser did not report done after [DONE] sentinel")
	}
	if deltas := p.Feed([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"late\"}}]}\n")); deltas != nil {
		t.Errorf("Feed after done returned %v, want nil", deltas)
	}
}

func TestFeed_PartialJSONWaitsForMoreBytes(t *testing.T) {
	p := &StreamParser{}

	// First feed ends mid-object; nothing should be emitted yet.
	if got := feedAll(t, p, "data: {\"choices\":[{\"delta\":{\"cont"); got != "" {
		t.Errorf("content after partial feed = %q, want empty", got)
	}

	if got := feedAll(t, p, "ent\":\"split\"}}]}\n"); got != "split" {
		t.Errorf("content after completing feed = %q, want %q", got, "split")
	}
}

func TestFeed_NonDataLinesIgnored(t *testing.T) {
	p := &StreamParser{}
	got := feedAll(t, p, "event: message\ndata: {\"choices\":[{\"delta\":{\"content\":\"x\"}}]}\n")
	if got != "x" {
		t.Errorf("content = %q, want %q", got, "x")
	}
}
