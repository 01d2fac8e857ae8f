package predict

import (
	"encoding/json"
	"fmt"
)

// ErrUnavailable indicates the endpoint could not be reached.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("prediction service unavailable: %v", e.Err)
	}
	return "prediction service unavailable"
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrStatus indicates the endpoint answered with a non-2xx status.
type ErrStatus struct {
	StatusCode int
}

func (e *ErrStatus) Error() string {
	return fmt.Sprintf("prediction service returned HTTP %d", e.StatusCode)
}

// ErrInvalidResponse indicates the body was not a JSON object carrying a
// string prediction.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid prediction response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }
