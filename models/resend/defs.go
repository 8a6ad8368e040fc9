package resend

type Send_Request struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type Send_Response struct {
	ID string `json:"id"`
}

// Send_Error is the error envelope Resend returns on non-2xx.
type Send_Error struct {
	Name       string `json:"name"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}
