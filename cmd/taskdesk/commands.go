// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/taskdesk-foundation/taskdesk/cmd/taskdesk/cli"
	"github.com/taskdesk-foundation/taskdesk/lib/schema"
	"github.com/taskdesk-foundation/taskdesk/lib/todoui"
	"github.com/taskdesk-foundation/taskdesk/lib/version"
)

// defaultServer is where a development taskdesk-service listens.
const defaultServer = "http://127.0.0.1:8080"

// defaultAdminSocket matches the development config's admin_socket.
const defaultAdminSocket = "taskdesk-data/admin.sock"

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:    "taskdesk",
		Summary: "client for a taskdesk-service instance",
		Subcommands: []*cli.Command{
			signupCommand(),
			loginCommand(),
			logoutCommand(),
			listCommand(),
			createCommand(),
			updateCommand(),
			deleteCommand(),
			statusCommand(),
			exportCommand(),
			versionCommand(),
		},
	}
}

// authedClient builds an API client from the cached session. An
// explicit --server overrides the cached one.
func authedClient(serverOverride string) (*apiClient, error) {
	creds, err := loadCredentials()
	if err != nil {
		return nil, err
	}
	server := creds.Server
	if serverOverride != "" {
		server = serverOverride
	}
	return newAPIClient(server, creds.Token), nil
}

// promptPassword reads a password without echo when stdin is a
// terminal, falling back to a plain line read otherwise (piped input
// in scripts and tests).
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return line, nil
}

func signupCommand() *cli.Command {
	var server, name string
	return &cli.Command{
		Name:    "signup",
		Summary: "create an account",
		Usage:   "taskdesk signup <email> --name <name> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("signup", pflag.ContinueOnError)
			flagSet.StringVar(&server, "server", defaultServer, "service base URL")
			flagSet.StringVar(&name, "name", "", "display name (required)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one email argument")
			}
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			client := newAPIClient(server, "")
			user, err := client.Signup(context.Background(), schema.SignupRequest{
				Email:    args[0],
				Name:     name,
				Password: password,
			})
			if err != nil {
				return err
			}
			fmt.Printf("account created: %s <%s>\n", user.Name, user.Email)
			fmt.Println("run 'taskdesk login' to start a session")
			return nil
		},
	}
}

func loginCommand() *cli.Command {
	var server string
	return &cli.Command{
		Name:    "login",
		Summary: "log in and cache a session token",
		Usage:   "taskdesk login <email> [flags]",
		Examples: []cli.Example{
			{Description: "log in against a remote service", Command: "taskdesk login alice@example.com --server https://todo.internal:8080"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flagSet.StringVar(&server, "server", defaultServer, "service base URL")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one email argument")
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			client := newAPIClient(server, "")
			login, err := client.Login(context.Background(), schema.LoginRequest{
				Email:    args[0],
				Password: password,
			})
			if err != nil {
				return err
			}

			err = saveCredentials(&credentials{
				Server:    server,
				Email:     login.User.Email,
				Token:     login.Token,
				ExpiresAt: login.ExpiresAt,
			})
			if err != nil {
				return err
			}
			fmt.Printf("logged in as %s (%s), session valid until %s\n",
				login.User.Email, login.User.Role,
				login.ExpiresAt.Local().Format(time.RFC822))
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "discard the cached session",
		Run: func(args []string) error {
			if err := clearCredentials(); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func listCommand() *cli.Command {
	var server string
	var interactive bool
	return &cli.Command{
		Name:    "list",
		Summary: "list todos visible to you",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.StringVar(&server, "server", "", "override the cached server URL")
			flagSet.BoolVarP(&interactive, "interactive", "i", false, "open the terminal browser")
			return flagSet
		},
		Run: func(args []string) error {
			client, err := authedClient(server)
			if err != nil {
				return err
			}
			items, err := client.ListTodos(context.Background())
			if err != nil {
				return err
			}

			if interactive {
				return todoui.Run(items)
			}
			printTodoTable(items)
			return nil
		},
	}
}

func printTodoTable(items []schema.TodoItem) {
	if len(items) == 0 {
		fmt.Println("no todos")
		return
	}
	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tOWNER")
	for _, item := range items {
		owner := ""
		if item.Owner != nil {
			owner = item.Owner.Email
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", shortID(item.ID), item.Status, item.Title, owner)
	}
	tw.Flush()
}

// shortID trims UUIDs for table display; full ids still work as
// command arguments.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func createCommand() *cli.Command {
	var server, description string
	return &cli.Command{
		Name:    "create",
		Summary: "create a todo (starts in draft)",
		Usage:   "taskdesk create <title> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flagSet.StringVar(&server, "server", "", "override the cached server URL")
			flagSet.StringVarP(&description, "description", "d", "", "markdown description")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one title argument")
			}
			client, err := authedClient(server)
			if err != nil {
				return err
			}
			item, err := client.CreateTodo(context.Background(), schema.CreateTodoRequest{
				Title:       args[0],
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created %s (%s)\n", shortID(item.ID), item.Status)
			return nil
		},
	}
}

// resolveTodo finds the caller's todo matching an id or unique id
// prefix.
func resolveTodo(ctx context.Context, client *apiClient, idOrPrefix string) (*schema.TodoItem, error) {
	items, err := client.ListTodos(ctx)
	if err != nil {
		return nil, err
	}

	var matches []schema.TodoItem
	for _, item := range items {
		if item.ID == idOrPrefix {
			return &item, nil
		}
		if strings.HasPrefix(item.ID, idOrPrefix) {
			matches = append(matches, item)
		}
	}
	switch len(matches) {
	case 1:
		return &matches[0], nil
	case 0:
		return nil, fmt.Errorf("no todo matches %q", idOrPrefix)
	default:
		return nil, fmt.Errorf("%q is ambiguous (%d matches), use a longer prefix", idOrPrefix, len(matches))
	}
}

func updateCommand() *cli.Command {
	var server, title, description, status string
	return &cli.Command{
		Name:    "update",
		Summary: "update a todo's title, description, or status",
		Usage:   "taskdesk update <id> [flags]",
		Examples: []cli.Example{
			{Description: "mark a todo in progress", Command: "taskdesk update 4f1c --status in_progress"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flagSet.StringVar(&server, "server", "", "override the cached server URL")
			flagSet.StringVar(&title, "title", "", "new title")
			flagSet.StringVarP(&description, "description", "d", "", "new markdown description")
			flagSet.StringVar(&status, "status", "", "new status (draft, in_progress, completed)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one id argument")
			}
			if title == "" && description == "" && status == "" {
				return fmt.Errorf("nothing to change: pass --title, --description, or --status")
			}

			client, err := authedClient(server)
			if err != nil {
				return err
			}
			ctx := context.Background()

			// Merge the flags over the current fields; the API's update
			// always carries all three.
			current, err := resolveTodo(ctx, client, args[0])
			if err != nil {
				return err
			}
			request := schema.UpdateTodoRequest{
				Title:       current.Title,
				Description: current.Description,
				Status:      string(current.Status),
			}
			if title != "" {
				request.Title = title
			}
			if description != "" {
				request.Description = description
			}
			if status != "" {
				request.Status = status
			}

			item, err := client.UpdateTodo(ctx, current.ID, request)
			if err != nil {
				return err
			}
			fmt.Printf("updated %s (%s)\n", shortID(item.ID), item.Status)
			return nil
		},
	}
}

func deleteCommand() *cli.Command {
	var server string
	return &cli.Command{
		Name:    "delete",
		Summary: "delete a todo",
		Usage:   "taskdesk delete <id> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("delete", pflag.ContinueOnError)
			flagSet.StringVar(&server, "server", "", "override the cached server URL")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one id argument")
			}
			client, err := authedClient(server)
			if err != nil {
				return err
			}
			ctx := context.Background()

			item, err := resolveTodo(ctx, client, args[0])
			if err != nil {
				return err
			}
			if err := client.DeleteTodo(ctx, item.ID); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", shortID(item.ID))
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "print version information",
		Run: func(args []string) error {
			fmt.Printf("taskdesk %s\n", version.Full())
			return nil
		},
	}
}
