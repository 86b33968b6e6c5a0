package invite

import "errors"

// Domain errors.
var (
	// ErrInviteNotFound is returned when an invite does not exist.
	ErrInviteNotFound = errors.New("invite not found")

	// ErrUnauthorizedRole is returned when an inviter lacks the authority
	// to issue an invite for the requested role.
	ErrUnauthorizedRole = errors.New("not authorized to invite this role")

	// ErrInvalidInvite is the uniform validation failure: unknown email or
	// token, wrong status, or past expiry all collapse into it so callers
	// cannot probe which invites exist.
	ErrInvalidInvite = errors.New("invalid invitation")

	// ErrSigningFailed is returned when an invite token cannot be signed.
	ErrSigningFailed = errors.New("failed to sign invitation token")

	// ErrResendThrottled is returned when a resend arrives inside the
	// cooldown window.
	ErrResendThrottled = errors.New("resend requested too soon")

	// ErrInvalidKind is returned for an unknown invite kind.
	ErrInvalidKind = errors.New("invalid invite kind")
)
