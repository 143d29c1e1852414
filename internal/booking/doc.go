// Package booking models one seat-booking attempt.
//
// # States
//
//	Idle --toggle--> Selecting --BeginSubmit--> Submitting --Resolve(ok)--> Confirmed
//	                     ^                           |
//	                     +------ toggle --- Failed <-+ Resolve(err)
//
// [Selection] is a value: [Selection.Toggle], [Selection.BeginSubmit] and [Selection.Resolve] return the next state
// and leave the receiver untouched. Booked seats can never enter a selection. An empty selection never produces a
// request.
//
// # Pricing
//
// The total is seats times the per-seat price. A price sent with the show replaces the configured default. When the
// booking response echoes a different total, the confirmed selection reports [Selection.PriceMismatch].
//
// # Idempotency
//
// Each attempt carries a key. Retrying the same set of seats reuses it; changing the seats issues a new one.
// [Submitter] sends it with the request and never retries by itself.
package booking
