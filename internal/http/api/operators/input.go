package operators

// OperatorsListInput for GET /operators (no parameters needed)
type OperatorsListInput struct{}

// OperatorRunInput defines path parameters for launching an operator.
type OperatorRunInput struct {
	Key string `path:"key" doc:"Operator key" example:"servicelink_auction" pattern:"^[a-z0-9_]{1,64}$"`
}
