package errors

import (
	"errors"
)

// As is a wrapper around errors.As that works with our Error type
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the error code from an error
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMeta extracts metadata from an error
func GetMeta(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Meta
	}

	return nil
}

// GetMessage extracts the user-friendly message from an error
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}

	return err.Error()
}

// Type checking helpers

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}

// IsUnavailable checks if an error is an unavailable error
func IsUnavailable(err error) bool {
	return GetCode(err) == CodeUnavailable
}

// IsFailedPrecondition checks if an error is a failed precondition error
func IsFailedPrecondition(err error) bool {
	return GetCode(err) == CodeFailedPrecondition
}

// IsUnknownPack checks if an error is an unknown pack error
func IsUnknownPack(err error) bool {
	return GetCode(err) == CodeUnknownPack
}

// IsInsufficientFunds checks if an error is an insufficient funds error
func IsInsufficientFunds(err error) bool {
	return GetCode(err) == CodeInsufficientFunds
}

// IsInvalidEvolution checks if an error is an invalid evolution target error
func IsInvalidEvolution(err error) bool {
	return GetCode(err) == CodeInvalidEvolution
}

// IsPriceMismatch checks if an error is a price mismatch error
func IsPriceMismatch(err error) bool {
	return GetCode(err) == CodePriceMismatch
}

// IsAlreadyInProgress checks if an error is an already in progress error
func IsAlreadyInProgress(err error) bool {
	return GetCode(err) == CodeAlreadyInProgress
}

// IsCatalogUnavailable checks if an error is a catalog unavailable error
func IsCatalogUnavailable(err error) bool {
	return GetCode(err) == CodeCatalogUnavailable
}
