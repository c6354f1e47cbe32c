// Command notesctl talks to a notes server from the terminal.
//
//	notesctl [-server URL] <command> [flags] [args]
//
// Commands: login, signup, list, add, toggle, delete, users. Commands that
// change notes need a token from -token or NOTES_TOKEN; `login` prints one.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/AlibekovAA/notes-app/backend/internal/client"
)

const defaultServer = "http://localhost:3001"

var errUsage = errors.New("usage")

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "notesctl: %v\n", err)
		}
		os.Exit(1)
	}
}

type cli struct {
	api    *client.Client
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("notesctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	server := global.String("server", envOr("NOTES_URL", defaultServer), "notes server base URL")
	global.Usage = func() {
		fmt.Fprintln(stderr, "usage: notesctl [-server URL] login|signup|list|add|toggle|delete|users [flags]")
		global.PrintDefaults()
	}
	if err := global.Parse(args); err != nil {
		return errUsage
	}
	if global.NArg() == 0 {
		global.Usage()
		return errUsage
	}

	c := &cli{api: client.New(*server, nil), stdout: stdout, stderr: stderr}
	cmd, rest := global.Arg(0), global.Args()[1:]

	switch cmd {
	case "login":
		return c.login(ctx, rest)
	case "signup":
		return c.signup(ctx, rest)
	case "list":
		return c.list(ctx)
	case "add":
		return c.add(ctx, rest)
	case "toggle":
		return c.toggle(ctx, rest)
	case "delete":
		return c.remove(ctx, rest)
	case "users":
		return c.users(ctx)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		global.Usage()
		return errUsage
	}
}

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := c.flags("login")
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil || *username == "" {
		fs.Usage()
		return errUsage
	}

	pw, err := passwordOrPrompt(*password, c.stderr)
	if err != nil {
		return err
	}

	cred, err := c.api.Login(ctx, *username, pw)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.stderr, "%s logged-in\n", cred.Name)
	fmt.Fprintf(c.stdout, "export NOTES_TOKEN=%s\n", cred.Token)
	return nil
}

func (c *cli) signup(ctx context.Context, args []string) error {
	fs := c.flags("signup")
	username := fs.String("username", "", "username")
	name := fs.String("name", "", "display name")
	password := fs.String("password", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil || *username == "" {
		fs.Usage()
		return errUsage
	}

	pw, err := passwordOrPrompt(*password, c.stderr)
	if err != nil {
		return err
	}

	user, err := c.api.CreateUser(ctx, *username, *name, pw)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "created user %s (%s)\n", user.Username, user.ID)
	return nil
}

func (c *cli) list(ctx context.Context) error {
	notes, err := c.api.ListNotes(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tIMPORTANT\tOWNER\tCONTENT")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%t\t%s\t%s\n", n.ID, n.Important, n.User.Username, n.Content)
	}
	return tw.Flush()
}

func (c *cli) users(ctx context.Context) error {
	users, err := c.api.ListUsers(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tNOTES")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", u.ID, u.Username, u.Name, len(u.Notes))
	}
	return tw.Flush()
}

func (c *cli) add(ctx context.Context, args []string) error {
	fs := c.flags("add")
	token := tokenFlag(fs)
	important := fs.Bool("important", false, "mark the note important")
	if err := fs.Parse(args); err != nil || fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	note, err := c.api.CreateNote(ctx, client.Credential{Token: *token}, client.NoteInput{
		Content:   strings.Join(fs.Args(), " "),
		Important: *important,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "created note %s\n", note.ID)
	return nil
}

func (c *cli) toggle(ctx context.Context, args []string) error {
	fs := c.flags("toggle")
	token := tokenFlag(fs)
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	note, err := c.api.ToggleImportance(ctx, client.Credential{Token: *token}, fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "note %s important=%t\n", note.ID, note.Important)
	return nil
}

func (c *cli) remove(ctx context.Context, args []string) error {
	fs := c.flags("delete")
	token := tokenFlag(fs)
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	if err := c.api.DeleteNote(ctx, client.Credential{Token: *token}, fs.Arg(0)); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "deleted note %s\n", fs.Arg(0))
	return nil
}

func tokenFlag(fs *flag.FlagSet) *string {
	return fs.String("token", os.Getenv("NOTES_TOKEN"), "session token (defaults to NOTES_TOKEN)")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
