package ec

import "errors"

// Common errors returned by the elliptic-curve arithmetic layer.
var (
	ErrCurveMismatch    = errors.New("only points on the same curve can be combined")
	ErrFieldMismatch    = errors.New("field elements belong to different fields")
	ErrDivByZero        = errors.New("division by the field's additive identity")
	ErrInfinityEncoding = errors.New("point at infinity cannot be encoded")
)
