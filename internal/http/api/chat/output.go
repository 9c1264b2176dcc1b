package chat

// ChatData is the response body for a chat completion.
type ChatData struct {
	Reply string `json:"reply" doc:"Assistant reply" example:"Hello! How can I help?"`
}

// ChatOutput is the response wrapper for POST /chat.
type ChatOutput struct {
	Body ChatData
}
