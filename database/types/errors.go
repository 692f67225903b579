//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

import "errors"

// Sentinel errors returned by the executor layer.
// Builders never fail; these only surface when a template is bound for execution.
var (
	// ErrParamCountMismatch is returned when the number of placeholder tokens in a
	// template differs from the number of accumulated parameters.
	ErrParamCountMismatch = errors.New("placeholder count does not match parameter count")

	// ErrUnsupportedParam is returned when a parameter cannot be coerced to the type
	// of the token it is bound to.
	ErrUnsupportedParam = errors.New("unsupported parameter value")

	// ErrUnsupportedVendor is returned when a connection or executor is requested for
	// an unknown database vendor.
	ErrUnsupportedVendor = errors.New("unsupported database vendor")

	// ErrNilQuerier is returned when an executor is constructed without a Querier.
	ErrNilQuerier = errors.New("querier cannot be nil")
)
