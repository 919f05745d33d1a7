package http

import (
	"github-stats/internal/shared/svcerrors"
)

// Query layer errors
const (
	codeInvalidQueryParam = "QRY_1000"
)

// errInvalidQueryParam returns an error for missing or malformed query
// parameters.
func errInvalidQueryParam(msg string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidQueryParam, msg, nil)
}
