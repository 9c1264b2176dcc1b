package chat

// ChatInput for POST /chat
type ChatInput struct {
	Body struct {
		Message string  `json:"message"          minLength:"1" maxLength:"4000" required:"true" doc:"User message"                example:"Say hello"`
		System  *string `json:"system,omitempty" minLength:"1" maxLength:"4000"                 doc:"Optional system prompt override"`
	}
}
