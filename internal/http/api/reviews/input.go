package reviews

// ReviewCreateInput for POST /reviews
type ReviewCreateInput struct {
	Body struct {
		Source  string         `json:"source"  minLength:"1" maxLength:"64" required:"true" doc:"Operator key that produced the lead" example:"servicelink_auction"`
		Payload map[string]any `json:"payload"                              required:"true" doc:"Lead data as captured by the bot"`
	}
}

// ReviewGetInput defines path parameters for retrieving a review item.
type ReviewGetInput struct {
	ID string `path:"id" doc:"Review item ID" format:"uuid"`
}

// ReviewListInput for GET /reviews (no parameters needed)
type ReviewListInput struct{}

// ReviewApproveInput defines path parameters for approving a review item.
type ReviewApproveInput struct {
	ID string `path:"id" doc:"Review item ID" format:"uuid"`
}

// ReviewRejectInput defines path and body parameters for rejecting a review item.
type ReviewRejectInput struct {
	ID   string `path:"id" doc:"Review item ID" format:"uuid"`
	Body struct {
		Reason string `json:"reason,omitempty" maxLength:"500" doc:"Rejection reason" example:"duplicate lead"`
	}
}

// ReviewClearInput for DELETE /reviews (no body needed)
type ReviewClearInput struct{}
