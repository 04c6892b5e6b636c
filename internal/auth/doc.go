// Package auth provides credential verification and session handling for
// campus-gateway.
//
// # Strategies
//
// Five named verification strategies exist, one per principal kind:
//
//   - admin: a fixed passcode supplied in both the key and secret fields
//   - university: username + password, only approved universities may log in
//   - spoc: username + password
//   - student: username + password
//   - faculty: employee id + password
//
// Strategies are registered once at startup into a Registry and are
// read-only thereafter. Registry.Validate runs at boot and treats a
// missing or malformed strategy as fatal configuration.
//
// # Verification
//
// Registry.Verify resolves a strategy by name, extracts the natural key
// and secret from the submitted fields, looks the principal up in the
// credential store, checks eligibility, and compares secrets with bcrypt.
// "No such principal", "ineligible principal", and "wrong secret" all
// collapse into the single ErrInvalidCredentials outcome so callers can
// never tell which one occurred. Infrastructure failures surface
// separately as ErrStoreUnavailable.
//
// # Identity
//
// Successful verification yields an Identity: the normalized, role-tagged
// record every downstream handler trusts. The mapping from stored record
// to Identity is a fixed per-kind table with no I/O.
//
// # Sessions
//
// SessionCodec serializes an Identity into an HS256-signed token whose
// claims carry the full Identity, so later requests need no store
// round-trip. Decoding anything structurally invalid yields ErrNoSession
// rather than an error the transport would treat as fatal.
package auth
