// Package auth decides whether a pair of credentials opens an account.
//
// The account state lives in a user record with three mutable fields: a
// failed attempt counter, the time of the last failure and an optional lock
// deadline. Apart from an administrative unlock, only Authenticate changes
// them.
//
// The rules are small but easy to get subtly wrong:
//
// An unknown email and a wrong password produce exactly the same message, so
// the sign-in form cannot be used to discover which emails are registered.
//
// A locked account is rejected before the password is looked at. The hash is
// not computed, and a correct password does not unlock the account early.
//
// Every wrong password increments the counter. When the counter reaches
// LockoutThreshold and the previous failure happened less than LockoutWindow
// ago, the account is locked for LockoutDuration. There is no per-attempt
// history: the window is checked against the previous failure only, and the
// counter is not reset when failures are far apart.
//
// A correct password on an unlocked account resets all three fields.
//
// Anything unexpected coming from the store (or the hasher) is logged and
// reported to the caller with a generic "try again" message.
package auth
