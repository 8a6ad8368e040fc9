package models

type Chat_Response struct {
	Text string `json:"text"`
}

type Contact_Response struct {
	OK bool    `json:"ok"`
	ID *string `json:"id"`
}

// ChatCompletionChunk is the streaming envelope written to the widget, one
// per delta, in the OpenAI chat.completion.chunk shape the frontend already
// parses.
type ChatCompletionChunk struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Created int64          `json:"created"`
	Model   string         `json:"model"`
	Choices []StreamChoice `json:"choices"`
}

type StreamChoice struct {
	Index        int         `json:"index"`
	Delta        StreamDelta `json:"delta"`
	FinishReason *string     `json:"finish_reason"`
}

type StreamDelta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}
