// Package router maps client paths to pages.
//
// # Route Table
//
//	/login             public
//	/signup            public
//	/movies            protected
//	/shows/:movieId    protected
//	/booking/:showId   protected
//	/my-bookings       protected
//	/                  redirects to /movies
//
// Anything else resolves like "/".
//
// # Middleware
//
// Resolution runs through a [Middleware] stack in the same shape as an HTTP handler chain. [Guard] is the only
// required middleware: it checks session presence on protected routes and rewrites the destination to /login,
// recording the original path in [Destination.RedirectedFrom]. The check runs on every resolution, so logging out
// takes effect on the next navigation.
package router
