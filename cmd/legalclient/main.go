package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-legal-client/api"
	"github.com/jrsteele09/go-legal-client/auth"
	"github.com/jrsteele09/go-legal-client/chat"
	"github.com/jrsteele09/go-legal-client/internal/app"
	"github.com/jrsteele09/go-legal-client/internal/config"
	"github.com/jrsteele09/go-legal-client/internal/logging"
	"github.com/jrsteele09/go-legal-client/locations"
	"github.com/jrsteele09/go-legal-client/session"
	"github.com/rs/zerolog/log"
)

const usage = `usage: legalclient <command> [flags]

commands:
  launch                      run the start-up redirect
  login -email E -password P  sign in and store the session
  logout                      end the session
  whoami                      print the signed-in user
  profile                     fetch the full profile into the session
  states [-page N -per-page N -q TEXT]
  cities -state ID [-page N -per-page N]
  search                      search states as you type, one query per line on stdin
  messages [-chat ID -page N -per-page N]
  send [-chat ID] TEXT        post a message
  follow [-chat ID]           print messages as they arrive
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if ae, ok := auth.AsAuthError(err); ok {
			fmt.Fprintln(os.Stderr, ae.Message)
			for _, fe := range ae.Errors {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", fe.Field, fe.Message)
			}
			os.Exit(1)
		}
		log.Error().Err(err).Str("command", os.Args[1]).Msg("command failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string) error {
	c, err := config.New()
	if err != nil {
		return err
	}
	logger := logging.New(c)
	logging.SetGlobal(logger)

	navigator := session.NavigatorFunc(func(route session.Route) {
		fmt.Printf("-> %s\n", route)
	})

	a, err := app.New(ctx, c, navigator, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn().Err(err).Msg("closing token store")
		}
	}()

	switch command {
	case "launch":
		displayAppname(c.GetAppName())
		_, err := a.Guard.Resolve(ctx)
		return err
	case "login":
		return login(ctx, a, args)
	case "logout":
		a.Session.Logout(ctx)
		return nil
	case "whoami":
		return whoami(a)
	case "profile":
		if err := a.Session.RefreshProfile(ctx); err != nil {
			return err
		}
		return whoami(a)
	case "states":
		return states(ctx, a, args)
	case "cities":
		return cities(ctx, a, args)
	case "search":
		return search(ctx, a, os.Stdin)
	case "messages":
		return messages(ctx, a, args)
	case "send":
		return send(ctx, a, args)
	case "follow":
		return follow(ctx, a, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func login(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.Session.SignIn(ctx, auth.Credentials{Email: *email, Password: *password}); err != nil {
		return err
	}
	fmt.Printf("signed in as %s\n", a.Session.User().FullName())
	return nil
}

func whoami(a *app.App) error {
	s := a.Session.State()
	if !s.IsAuthenticated {
		fmt.Println("not signed in")
		return nil
	}
	if s.User == nil {
		fmt.Println("signed in, profile not loaded (run: legalclient profile)")
		return nil
	}
	fmt.Printf("%s <%s>\n", s.User.FullName(), s.User.Email)
	fmt.Printf("  id:   %s\n", s.User.ID)
	if s.User.CityID != nil {
		fmt.Printf("  city: %s\n", *s.User.CityID)
	}
	return nil
}

func states(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("states", flag.ContinueOnError)
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", 20, "page size")
	query := fs.String("q", "", "name filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := a.Locations.SearchStates(ctx, *query, *page, *perPage)
	if err != nil {
		return err
	}
	for _, s := range p.Items {
		fmt.Printf("%-8s %-4s %s\n", s.ID, s.Code, s.Name)
	}
	fmt.Printf("page %d, %d of %d\n", p.Page, len(p.Items), p.Total)
	return nil
}

func cities(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("cities", flag.ContinueOnError)
	stateID := fs.String("state", "", "state ID")
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", 20, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *stateID == "" {
		return errors.New("-state is required")
	}

	p, err := a.Locations.Cities(ctx, *stateID, *page, *perPage)
	if err != nil {
		return err
	}
	for _, c := range p.Items {
		fmt.Printf("%-10s %s\n", c.ID, c.Name)
	}
	fmt.Printf("page %d, %d of %d\n", p.Page, len(p.Items), p.Total)
	return nil
}

func search(ctx context.Context, a *app.App, in io.Reader) error {
	results := make(chan locations.SearchResult, 1)
	s := a.Locations.NewStateSearch(ctx, locations.DefaultSearchQuiet, 10, func(r locations.SearchResult) {
		results <- r
	})
	defer s.Stop()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	last, typed, open := "", false, true
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if !typed {
					return nil
				}
				lines, open = nil, false
				continue
			}
			last, typed = strings.TrimSpace(line), true
			s.Type(last)
		case r := <-results:
			if r.Err != nil {
				return r.Err
			}
			fmt.Printf("%q:\n", r.Query)
			for _, st := range r.Page.Items {
				fmt.Printf("  %-8s %s\n", st.ID, st.Name)
			}
			if !open && r.Query == last {
				return nil
			}
		}
	}
}

func messages(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("messages", flag.ContinueOnError)
	chatID := fs.String("chat", api.SupportConversationID, "conversation ID")
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", 50, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := a.Chat.Messages(ctx, *chatID, *page, *perPage)
	if err != nil {
		return err
	}
	for _, m := range p.Messages {
		printMessage(m)
	}
	fmt.Printf("page %d, %d of %d\n", p.Page, len(p.Messages), p.Total)
	return nil
}

func send(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	chatID := fs.String("chat", api.SupportConversationID, "conversation ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := a.Chat.Send(ctx, *chatID, strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}
	printMessage(*m)
	return nil
}

func follow(ctx context.Context, a *app.App, args []string) error {
	fs := flag.NewFlagSet("follow", flag.ContinueOnError)
	chatID := fs.String("chat", api.SupportConversationID, "conversation ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stream, err := a.Chat.Stream(ctx, *chatID)
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		m, err := stream.Next()
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			if ctx.Err() != nil {
				return nil // interrupted
			}
			return err
		}
		printMessage(*m)
	}
}

func printMessage(m chat.Message) {
	fmt.Printf("[%s] %s: %s\n", m.CreatedAt.Local().Format("15:04"), m.SenderID, m.Body)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
