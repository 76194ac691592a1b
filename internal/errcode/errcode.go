// Package errcode defines the numeric error codes shared by the API, the
// worker and the websocket notify protocol.
//
// Convention:
// - 0: no error
// - 4xxx: caller/business errors the user can act on
// - 5xxx: system errors
package errcode

const (
	OK = 0

	Validation      = 4000
	NotFound        = 4004
	Conflict        = 4009
	RateLimit       = 4029
	Unauthenticated = 4401
	Forbidden       = 4403
	ResourceMissing = 4404

	SystemError = 5000
	Unknown     = 5999
)
