package offers

import "github.com/cockroachdb/errors"

var (
	// ErrVendorUnavailable marks a failed fetch from one source. It never
	// leaves the vendor client; it is logged and the source yields nothing.
	ErrVendorUnavailable = errors.New("vendor unavailable")
	// ErrMalformedRecord marks a vendor record missing its identity fields.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidOptions is the only error Aggregate returns.
	ErrInvalidOptions = errors.New("invalid options")
)

// VendorUnavailable wraps err and marks it as ErrVendorUnavailable.
func VendorUnavailable(err error, source Source) error {
	return errors.Mark(errors.Wrapf(err, "fetching %s", source), ErrVendorUnavailable)
}

func MalformedRecord(source Source, format string, args ...interface{}) error {
	return errors.Mark(errors.Newf("%s: "+format, append([]interface{}{source}, args...)...), ErrMalformedRecord)
}

func InvalidOptions(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidOptions)
}
