package stores

import (
	"fmt"

	"github-stats/internal/shared/svcerrors"
)

// EventStore errors
const (
	codeInvalidArgument = "STO_1000"
	codeNotImplemented  = "STO_1001"

	codeStorageUnavailable = "STO_9000"
	codeQueryFailed        = "STO_9001"
)

// errInvalidArgument returns an error for rejected query parameters.
func errInvalidArgument(msg string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidArgument, msg, nil)
}

// errNotImplemented returns an error for capabilities a backend deliberately
// does not support.
func errNotImplemented(capability string) *svcerrors.ServiceError {
	return svcerrors.NewNotImplementedError(codeNotImplemented, fmt.Sprintf("%s is not supported by this backend", capability))
}

// errStorageUnavailable returns an error when the backend cannot be reached.
func errStorageUnavailable(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnavailableError(codeStorageUnavailable, "event storage unavailable", fmt.Errorf("storageUnavailable: %w", cause))
}

// errQueryFailed returns an error when a backend query fails after a
// connection was established.
func errQueryFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewUnavailableError(codeQueryFailed, "event storage query failed", fmt.Errorf("storageQueryFailed: %w", cause))
}
