// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format (table, csv, markdown, text)",
		Value:   "table",
	}
}

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

// setupCommand handles setup operations for the config file and local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize the local database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write a config.toml from the built-in template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path of the file to create",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage your account session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password (prompted when omitted)"},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "signup",
				Usage: "Create an account and log in",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Full name"},
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email"},
					&cli.StringFlag{Name: "phone", Usage: "10 digit phone number"},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password (prompted when omitted)"},
				},
				Action: r.AuthSignup,
			},
			{
				Name:   "logout",
				Usage:  "End the current session",
				Action: r.AuthLogout,
			},
			{
				Name:  "whoami",
				Usage: "Show the logged in user",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output the stored identity as JSON"},
				},
				Action: r.AuthWhoami,
			},
		},
	}
}

// moviesCommand lists every movie.
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "movies",
		Usage:  "List movies",
		Flags:  append(jsonFlags(), formatFlag()),
		Action: r.Movies,
	}
}

// showsCommand lists the shows of one movie.
func showsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "shows",
		Usage: "List the shows of a movie",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "movieId"},
		},
		Flags:  jsonFlags(),
		Action: r.Shows,
	}
}

// seatsCommand prints the seat map of a show.
func seatsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seats",
		Usage: "Show the seat map of a show",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "showId"},
		},
		Action: r.Seats,
	}
}

// bookCommand books seats for a show.
func bookCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "book",
		Usage: "Book seats for a show",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "showId"},
		},
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "seat",
				Aliases: []string{"s"},
				Usage:   "Seat to book, repeatable (e.g. --seat A1 --seat A2)",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		Action: r.Book,
	}
}

// bookingsCommand lists the user's bookings.
func bookingsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "bookings",
		Usage: "List your bookings",
		Flags: append(jsonFlags(),
			formatFlag(),
			&cli.BoolFlag{
				Name:  "cached",
				Usage: "Read the local cache instead of the API",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Export to a file (default bookings_<user>.<ext>)",
			},
			&cli.BoolFlag{
				Name:  "export",
				Usage: "Write the bookings to a file instead of stdout",
			},
		),
		Action: r.Bookings,
	}
}

// cacheCommand manages the local booking cache.
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect the local booking cache",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show what is cached for the current user",
				Action: r.CacheShow,
			},
			{
				Name:   "clear",
				Usage:  "Drop the cached bookings of the current user",
				Action: r.CacheClear,
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the booking API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints the raw response",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// openCommand resolves a path through the router.
func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "open",
		Usage: "Resolve a page path and print where it lands",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Action: r.Open,
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive booking client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "start",
				Usage: "Page to open first",
				Value: "/",
			},
		},
		Action: r.TUI,
	}
}
