package pia

import "errors"

var (
	ErrTrustAnchorFetch = errors.New("cannot fetch PIA certificate")
	ErrDirectoryFetch   = errors.New("cannot fetch PIA server list")
	ErrDirectoryParse   = errors.New("invalid PIA server list")
	ErrSubprocess       = errors.New("key generation command failed")

	// ErrAuthentication means the credentials were rejected; it is the only
	// error worth retrying, with different credentials.
	ErrAuthentication = errors.New("invalid login or/and password")
	ErrAuthResponse   = errors.New("invalid token response")

	ErrRegistration         = errors.New("cannot add key to server")
	ErrRegistrationResponse = errors.New("invalid addKey response")
)
