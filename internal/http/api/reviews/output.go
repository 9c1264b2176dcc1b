package reviews

// ReviewCreateOutput is the response wrapper for POST /reviews (201 Created).
type ReviewCreateOutput struct {
	Location string `header:"Location" doc:"URL of the queued item"`
	Body     Item
}

// ReviewGetOutput is the response wrapper for GET /reviews/{id}.
type ReviewGetOutput struct {
	Body Item
}

// ReviewListData is the response body for listing review items.
type ReviewListData struct {
	Items []Item `json:"items" doc:"Pending items, newest first"`
	Count int    `json:"count" doc:"Number of items returned" example:"3"`
}

// ReviewListOutput is the response wrapper for GET /reviews.
type ReviewListOutput struct {
	Body ReviewListData
}

// ReviewResolveOutput is the response wrapper for approve and reject.
type ReviewResolveOutput struct {
	Body Resolution
}

// ReviewClearData is the response body after clearing the queue.
type ReviewClearData struct {
	Cleared int `json:"cleared" doc:"Number of items removed" example:"3"`
}

// ReviewClearOutput is the response wrapper for DELETE /reviews.
type ReviewClearOutput struct {
	Body ReviewClearData
}
