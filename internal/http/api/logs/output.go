package logs

// LogsTailData is the response body for the log tail endpoint.
type LogsTailData struct {
	Lines []LogLine `json:"lines" doc:"Captured lines, oldest first"`
	Count int       `json:"count" doc:"Number of lines returned" example:"200"`
	Total int       `json:"total" doc:"Number of lines currently buffered" example:"500"`
}

// LogsTailOutput is the response wrapper for GET /logs.
type LogsTailOutput struct {
	Body LogsTailData
}
