// Package services implements the client for the remote booking API.
//
// # API Service
//
// [APIService] is the single configured HTTP client. It resolves every path under <base_url>/api,
// sends JSON, and bounds each request with one overall timeout. An optional [rate.Limiter] throttles
// outgoing calls.
//
// The raw methods ([APIService.Get], [APIService.Post], [APIService.Do]) return an [APIResponse]
// regardless of status. The typed methods decode the response envelope:
//
//	{"success": bool, "data": any?, "message": string?}
//
// # Interfaces
//
// Consumers depend on the narrow interfaces rather than the concrete client:
//   - [AuthAPI] : login and signup
//   - [CatalogAPI] : movies and shows
//   - [BookingAPI] : booking submission and history
//
// # Error Handling
//
// Every failure is an [*APIError] whose Kind unwraps to a sentinel from the shared package:
//   - [shared.ErrTimeout] : the request timed out
//   - [shared.ErrNetwork] : no response was received
//   - [shared.ErrApplication] : the envelope reported success=false, or a non-2xx status carried an envelope
//   - [shared.ErrServer] : a non-2xx status without an envelope, or an unreadable body
//
// Cancellation by the caller is not normalized; the context error is returned as is so that callers
// can drop results for pages that are gone.
package services
