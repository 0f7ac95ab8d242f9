package errors

import "net/http"

// Code represents an error code
type Code string

// Generic error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

// Economy error codes. These are the declined-operation outcomes the engine
// reports to the presentation layer; none of them is fatal to the session.
const (
	CodeUnknownPack        Code = "UNKNOWN_PACK"
	CodeInsufficientFunds  Code = "INSUFFICIENT_FUNDS"
	CodeInvalidEvolution   Code = "INVALID_EVOLUTION_TARGET"
	CodePriceMismatch      Code = "PRICE_MISMATCH"
	CodeAlreadyInProgress  Code = "ALREADY_IN_PROGRESS"
	CodeCatalogUnavailable Code = "CATALOG_UNAVAILABLE"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// HTTPStatus returns the corresponding HTTP status code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOK:
		return http.StatusOK
	case CodeCanceled:
		return http.StatusRequestTimeout
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeDeadlineExceeded:
		return http.StatusGatewayTimeout
	case CodeNotFound, CodeUnknownPack:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeAlreadyInProgress:
		return http.StatusConflict
	case CodeFailedPrecondition, CodeInsufficientFunds, CodeInvalidEvolution, CodePriceMismatch:
		return http.StatusUnprocessableEntity
	case CodeUnavailable, CodeCatalogUnavailable:
		return http.StatusServiceUnavailable
	case CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
