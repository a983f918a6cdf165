package response

// Symbolic error codes exposed in error bodies. Clients branch on these,
// not on the human-readable message.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeEmailTaken         = "EMAIL_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeNotFound           = "NOT_FOUND"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeServerError        = "INTERNAL"
)
