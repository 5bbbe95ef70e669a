package contract

// ErrorBody is the envelope for every non-2xx JSON response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Error codes used in ErrorDetail.Code beyond app.RequestErrorCode.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeUnavailable  = "DEPENDENCY_UNAVAILABLE"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL"
	CodeBadJSON      = "INVALID_JSON"
)

func NewErrorBody(code, message string, details any) ErrorBody {
	return ErrorBody{Error: ErrorDetail{Code: code, Message: message, Details: details}}
}
