// Package pages holds the data side of each screen.
//
// Every page embeds a [Loader], which moves through Loading, then Ready, Empty or Error. A fetch is issued as a
// [Ticket] so callers decide where it runs: the CLI calls [Loader.Load] inline, the TUI runs the ticket in a
// command and feeds the [Result] back through [Loader.Apply].
//
// Results from superseded or cancelled fetches are dropped, so leaving a page can never overwrite the page that
// replaced it.
//
// [Auth] covers the login and signup forms. Inputs are validated before any request is made.
package pages
