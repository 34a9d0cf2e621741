package session

import "time"

type (
	ChallengeKind byte

	Decision struct {
		Allow     bool
		Challenge ChallengeKind
	}
)

const (
	NoChallenge ChallengeKind = iota
	// SignInPage asks the transport to render the sign-in form in place of
	// the protected page.
	SignInPage
	// Unauthorized asks the transport to answer with a bare 401.
	Unauthorized
)

// RequireAuth decides whether a request carrying s may proceed at now.
//
// An authenticated session idle for at most InactivityTimeout is allowed and
// its LastActivity moves to now. An idle one is de-authenticated. Nothing
// else in s is touched.
func RequireAuth(s *Session, now time.Time, wantsMachineReadable bool) Decision {
	if s != nil && s.Authenticated {
		if now.Sub(s.LastActivity) <= InactivityTimeout {
			s.LastActivity = now
			return Decision{Allow: true}
		}
		s.Authenticated = false
	}
	if wantsMachineReadable {
		return Decision{Challenge: Unauthorized}
	}
	return Decision{Challenge: SignInPage}
}
