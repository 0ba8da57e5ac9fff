// Package srp6 implements the SRP-6a Secure Remote Password protocol.
//
// SRP-6a is a Password Authenticated Key Exchange (PAKE): a client proves knowledge of a password to a server, and
// both derive a shared session key, without the password ever being transmitted, and with the server only storing
// a salt and a one-way verifier.
//
// The computations follow RFC 5054 (https://www.rfc-editor.org/rfc/rfc5054), with two differences in the default
// routines: the password key x = H(s | H(P)) omits the user identity, and the evidence messages M1 = H(A | B | S) and
// M2 = H(A | M1 | S) follow Tom Wu's 2002 SRP-6 paper. Both can be swapped through routine hooks, see
// XRoutineWithUserIdentity and the hexhash package.
//
// Enrollment:
//
//	params := srp6.DefaultCryptoParams()
//	salt, _ := srp6.GenerateRandomSalt(rand.Reader, 0)
//	gen, _ := srp6.NewVerifierGenerator(params)
//	v, _ := gen.GenerateVerifier(salt, []byte(userID), []byte(password))
//
// Authentication, with messages relayed by the caller:
//
//	server: B, err := serverSession.Step1(userID, salt, v)        -> send (salt, B)
//	client: err := clientSession.Step1(userID, password)
//	client: creds, err := clientSession.Step2(params, salt, B)    -> send (A, M1)
//	server: M2, err := serverSession.Step2(creds.A, creds.M1)     -> send M2
//	client: err := clientSession.Step3(M2)
//
// Sessions are single-use and not safe for concurrent use. ErrBadPublicValue and ErrBadCredentials abort the session.
// ErrTimeout leaves it untouched, and every later step times out as well. In all three cases the session must be
// discarded.
package srp6
