package errors

import "net/http"

// Messages carried in the error envelope for each status the API emits.
const (
	MsgBadRequest       = "bad request"
	MsgNotFound         = "Resource not found."
	MsgMethodNotAllowed = "Method not allowed."
	MsgUnprocessable    = "Unprocessable entity."
	MsgInternalError    = "Server error."
	MsgUpstreamError    = "Upstream error."
)

// Message returns the standard envelope message for status.
func Message(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusMethodNotAllowed:
		return MsgMethodNotAllowed
	case http.StatusUnprocessableEntity:
		return MsgUnprocessable
	case http.StatusInternalServerError:
		return MsgInternalError
	case http.StatusBadGateway:
		return MsgUpstreamError
	default:
		return http.StatusText(status)
	}
}
