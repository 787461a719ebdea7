package httperr

import "errors"

// BusinessError is a domain failure the caller can act on. Values are
// comparable, so errors.Is matches on Code.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// Code returns the business code carried by err, or "" for infrastructure
// failures.
func Code(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
