package logs

// LogsTailInput defines query parameters for the log tail endpoint.
type LogsTailInput struct {
	Limit int `query:"limit" doc:"Maximum lines to return, most recent last" default:"200" minimum:"1" maximum:"1000"`
}

// LogStreamInput for GET /logs/stream (no parameters needed)
type LogStreamInput struct{}
