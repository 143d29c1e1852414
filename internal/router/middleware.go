package router

import (
	"github.com/charmbracelet/log"
)

// Authenticator reports whether a session is present.
type Authenticator interface {
	Authenticated() bool
}

// Guard sends anonymous users on protected routes to /login, remembering where they were headed.
func Guard(auth Authenticator) Middleware {
	return func(next Resolver) Resolver {
		return func(d Destination) Destination {
			if d.Route.Protected && !auth.Authenticated() {
				return Destination{
					Route:          Route{Name: Login, Pattern: "/login"},
					Path:           "/login",
					Params:         Params{},
					RedirectedFrom: d.Path,
				}
			}
			return next(d)
		}
	}
}

// Logging records every resolution at debug level.
func Logging(logger *log.Logger) Middleware {
	return func(next Resolver) Resolver {
		return func(d Destination) Destination {
			out := next(d)
			logger.Debug("route", "path", d.Path, "page", out.Route.Name, "redirected_from", out.RedirectedFrom)
			return out
		}
	}
}
