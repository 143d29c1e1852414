// package router maps client paths to pages and gates protected pages behind a session
package router

import (
	"net/url"
	"strings"

	"github.com/desertthunder/showtime/internal/models"
)

// Name identifies a page.
type Name string

const (
	Login      Name = "login"
	Signup     Name = "signup"
	Movies     Name = "movies"
	Shows      Name = "shows"
	Booking    Name = "booking"
	MyBookings Name = "my-bookings"
	Root       Name = "root"
)

const maxRedirects = 8

// Route is one entry of the route table.
type Route struct {
	Name      Name
	Pattern   string // segments starting with ':' capture a parameter
	Protected bool
	Redirect  string // when set, resolving this route continues at the given path
}

// Params holds captured path parameters, unescaped.
type Params map[string]string

// ID returns the named parameter as a [models.ID].
func (p Params) ID(key string) models.ID { return models.ParseID(p[key]) }

// Destination is the outcome of resolving a path.
type Destination struct {
	Route  Route
	Path   string
	Params Params

	// RedirectedFrom is the protected path that sent an anonymous user to login.
	RedirectedFrom string
}

// Redirected reports whether the guard rewrote the destination.
func (d Destination) Redirected() bool { return d.RedirectedFrom != "" }

// Resolver turns a matched destination into the final one.
type Resolver func(Destination) Destination

// Middleware wraps a [Resolver] with additional behavior.
type Middleware func(Resolver) Resolver

// Router holds the route table and the middleware stack.
type Router struct {
	routes      []Route
	fallback    Route
	middlewares []Middleware
}

// DefaultRoutes is the client route table. The root path is the fallback for unknown paths.
func DefaultRoutes() []Route {
	return []Route{
		{Name: Login, Pattern: "/login"},
		{Name: Signup, Pattern: "/signup"},
		{Name: Movies, Pattern: "/movies", Protected: true},
		{Name: Shows, Pattern: "/shows/:movieId", Protected: true},
		{Name: Booking, Pattern: "/booking/:showId", Protected: true},
		{Name: MyBookings, Pattern: "/my-bookings", Protected: true},
		{Name: Root, Pattern: "/", Redirect: "/movies"},
	}
}

// New creates a Router over routes. The route named [Root] is used for unmatched paths.
func New(routes []Route) *Router {
	r := &Router{routes: routes}
	for _, route := range routes {
		if route.Name == Root {
			r.fallback = route
		}
	}
	return r
}

// NewDefault creates a Router over [DefaultRoutes] guarded by auth.
func NewDefault(auth Authenticator) *Router {
	r := New(DefaultRoutes())
	r.Use(Guard(auth))
	return r
}

// Use adds [Middleware] to the router's stack, applied in the order it's added.
func (r *Router) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Apply wraps a resolver with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (r *Router) Apply(resolver Resolver) Resolver {
	wrapped := resolver
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}
	return wrapped
}

// Resolve matches path against the table, follows redirects, and runs the middleware stack.
//
// Unknown paths resolve like "/".
func (r *Router) Resolve(path string) Destination {
	resolve := r.Apply(func(d Destination) Destination { return d })

	path = normalize(path)
	for i := 0; i < maxRedirects; i++ {
		d := r.match(path)
		if d.Route.Redirect == "" {
			return resolve(d)
		}
		path = normalize(d.Route.Redirect)
	}
	return resolve(r.match(path))
}

// Route returns the table entry with the given name.
func (r *Router) Route(name Name) (Route, bool) {
	for _, route := range r.routes {
		if route.Name == name {
			return route, true
		}
	}
	return Route{}, false
}

func (r *Router) match(path string) Destination {
	for _, route := range r.routes {
		if params, ok := matchPattern(route.Pattern, path); ok {
			return Destination{Route: route, Path: path, Params: params}
		}
	}
	return Destination{Route: r.fallback, Path: r.fallback.Pattern, Params: Params{}}
}

func matchPattern(pattern, path string) (Params, bool) {
	ps := splitPath(pattern)
	xs := splitPath(path)
	if len(ps) != len(xs) {
		return nil, false
	}

	params := Params{}
	for i, seg := range ps {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			v, err := url.PathUnescape(xs[i])
			if err != nil || v == "" {
				return nil, false
			}
			params[name] = v
			continue
		}
		if seg != xs[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// normalize drops the query and fragment, forces a leading slash, and strips a trailing one.
func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")
	return path
}

// ShowsPath builds the Shows page path for movieID.
func ShowsPath(movieID models.ID) string {
	return "/shows/" + url.PathEscape(movieID.String())
}

// BookingPath builds the Booking page path for showID.
func BookingPath(showID models.ID) string {
	return "/booking/" + url.PathEscape(showID.String())
}
