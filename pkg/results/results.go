// Package results separates domain outcomes from infrastructure errors.
//
// A service operation returns (OperationResult, error). The error is reserved for
// infrastructure failures (connection loss, unexpected query errors). Expected
// business outcomes such as "band not found" travel as a Failure so callers can
// tell them apart without string matching.
package results

// OperationResult holds exactly one of Success or Failure.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult wraps a successful value.
func SuccessResult[S any, F any](v S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &v}
}

// FailureResult wraps a domain failure.
func FailureResult[S any, F any](f F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &f}
}

// IsSuccess reports whether the result carries a success payload.
func (r OperationResult[S, F]) IsSuccess() bool {
	return r.Success != nil
}

// IsFailure reports whether the result carries a failure payload.
func (r OperationResult[S, F]) IsFailure() bool {
	return r.Failure != nil
}

// Unwrap returns the success value or the failure converted to an error.
// A result carrying neither returns the zero value and a nil error.
func Unwrap[S any](r OperationResult[S, error]) (S, error) {
	var zero S
	if r.Failure != nil {
		return zero, *r.Failure
	}
	if r.Success != nil {
		return *r.Success, nil
	}
	return zero, nil
}
