package ai

import (
	"bytes"
	"encoding/json"
	"strings"
)

// StreamParser incrementally reassembles content deltas out of an SSE
// completion stream. The upstream framing is newline-delimited "data: <json>"
// lines terminated by a literal "[DONE]" sentinel; comment lines (":" prefix)
// and blank lines are ignored.
//
// Feed may be called with chunks split at arbitrary byte boundaries. A "data:"
// line whose payload does not yet parse as JSON is pushed back onto the buffer
// and retried once more bytes arrive, so a JSON object split across two chunks
// is handled without loss.
type StreamParser struct {
	buf  []byte
	done bool
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Feed appends chunk to the internal buffer and returns the content deltas
// completed by it, in order.
func (p *StreamParser) Feed(chunk []byte) []string {
	if p.done {
		return nil
	}
	p.buf = append(p.buf, chunk...)

	var deltas []string
	for {
		// accumulating: wait for a full line
		i := bytes.IndexByte(p.buf, '\n')
		if i < 0 {
			return deltas
		}
		line := strings.TrimSuffix(string(p.buf[:i]), "\r")
		rest := p.buf[i+1:]

		// skip: blank lines and SSE comments
		if line == "" || strings.HasPrefix(line, ":") {
			p.buf = rest
			continue
		}
		payload, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			p.buf = rest
			continue
		}

		// stop: terminal sentinel
		if payload == "[DONE]" {
			p.done = true
			p.buf = nil
			return deltas
		}

		var ev streamChunk
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			// The JSON object may have been split across chunk boundaries.
			// Push the line back and wait for more bytes.
			p.buf = append([]byte(line+"\n"), rest...)
			return deltas
		}
		p.buf = rest

		// emit
		for _, choice := range ev.Choices {
			if choice.Delta.Content != "" {
				deltas = append(deltas, choice.Delta.Content)
			}
		}
	}
}

// Done reports whether the [DONE] sentinel has been seen.
func (p *StreamParser) Done() bool {
	return p.done
}
