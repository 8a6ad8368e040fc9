package chat

import (
	"bytes"
	"encoding/json"
	"strings"
)

// doneSentinel is the explicit end marker some upstreams send. It stops delta
// extraction but does not terminate the reframer: the terminal event belongs
// to end-of-input, because not every upstream sends the sentinel at all.
const doneSentinel = "[DONE]"

// Reframer turns an upstream SSE byte stream into incremental text deltas.
//
// Upstreams disagree on whether each event's text is cumulative (the full
// text so far) or incremental (just the new piece). The reframer normalizes
// both: when the new text extends the previous full text as a prefix, the
// delta is the suffix; otherwise the whole text is taken as the delta. The
// heuristic can misfire if upstream text legitimately shrinks, which no
// observed upstream does.
//
// A Reframer is private to one in-flight request and is not safe for
// concurrent use.
type Reframer struct {
	buf      []byte
	prevFull string
	done     bool
}

func NewReframer() *Reframer {
	return &Reframer{}
}

// Feed consumes the next chunk of upstream bytes and returns the deltas it
// completes, in arrival order. Partial trailing lines stay buffered until a
// newline arrives, so feeding byte-by-byte yields the same deltas as feeding
// the whole stream at once.
func (r *Reframer) Feed(chunk []byte) []string {
	r.buf = append(r.buf, chunk...)

	var deltas []string
	for {
		idx := bytes.IndexByte(r.buf, '\n')
		if idx < 0 {
			return deltas
		}
		line := r.buf[:idx]
		r.buf = r.buf[idx+1:]

		if delta, ok := r.process_line(line); ok {
			deltas = append(deltas, delta)
		}
	}
}

// SawDone reports whether the upstream sent its explicit end sentinel.
func (r *Reframer) SawDone() bool {
	return r.done
}

func (r *Reframer) process_line(line []byte) (string, bool) {
	if r.done {
		return "", false
	}
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return "", false
	}

	payload, ok := strings.CutPrefix(string(line), "data:")
	if !ok {
		// Comment lines, event names, anything that is not a data field.
		return "", false
	}
	payload = strings.TrimSpace(payload)

	if payload == doneSentinel {
		r.done = true
		return "", false
	}

	text := extract_text([]byte(payload))
	if text == "" {
		return "", false
	}

	delta := text
	if strings.HasPrefix(text, r.prevFull) {
		// Cumulative upstream: only the unseen suffix is new.
		delta = text[len(r.prevFull):]
	}
	r.prevFull = text

	if delta == "" {
		return "", false
	}
	return delta, true
}

// stream_payload covers both upstream event shapes seen in production: the
// Gemini candidates form and the OpenAI chat.completion.chunk form.
type stream_payload struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// extract_text pulls the candidate text out of one event payload. Malformed
// JSON and empty events yield "", which the caller skips; a broken upstream
// fragment must never kill the stream.
func extract_text(payload []byte) string {
	var event stream_payload
	if err := json.Unmarshal(payload, &event); err != nil {
		return ""
	}

	if len(event.Candidates) > 0 {
		var sb strings.Builder
		for _, part := range event.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
		if sb.Len() > 0 {
			return sb.String()
		}
	}

	if len(event.Choices) > 0 {
		return event.Choices[0].Delta.Content
	}
	return ""
}
