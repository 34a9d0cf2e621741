package auth

const (
	MsgAuthenticated      = "Authentication successful"
	MsgInvalidCredentials = "Email or password is incorrect"
	MsgAccountLocked      = "Account locked. Try again after 15 minutes."
	MsgBackendFault       = "Authentication failed. Please try again."
)

type (
	// Outcome classifies an authentication attempt.
	Outcome byte

	// Result is returned by Authenticate. Failures are never reported as Go
	// errors; Message is safe to show to the person signing in.
	Result struct {
		Success bool
		User    *PublicUser
		Message string
		Outcome Outcome
	}
)

const (
	Authenticated Outcome = iota + 1
	InvalidCredentials
	AccountLocked
	BackendFault
)

func (o Outcome) String() string {
	switch o {
	case Authenticated:
		return "authenticated"
	case InvalidCredentials:
		return "invalid-credentials"
	case AccountLocked:
		return "account-locked"
	case BackendFault:
		return "backend-fault"
	}
	return "unknown"
}

func succeeded(u *PublicUser) Result {
	return Result{Success: true, User: u, Message: MsgAuthenticated, Outcome: Authenticated}
}

func failed(o Outcome) Result {
	r := Result{Outcome: o}
	switch o {
	case AccountLocked:
		r.Message = MsgAccountLocked
	case InvalidCredentials:
		r.Message = MsgInvalidCredentials
	default:
		r.Outcome = BackendFault
		r.Message = MsgBackendFault
	}
	return r
}
