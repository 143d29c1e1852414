// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// Every client page is a view, and every move between them goes through the [router.Router], so protected views
// are only reachable with a session:
//  1. [LoginView], [SignupView] : credential forms, validated before any request
//  2. [MoviesView] : the movie list
//  3. [ShowsView] : shows for one movie with their open seat counts
//  4. [BookingView] : the seat map and the booking attempt
//  5. [MyBookingsView] : booking history
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Network calls run as commands. Navigating away cancels the page's context and any result that still arrives for it is
// discarded.
//
// Keyboard navigation uses vim-style bindings (h/j/k/l, enter, esc, space, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
