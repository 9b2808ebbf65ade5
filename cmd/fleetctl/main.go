// Command fleetctl drives the fleet documents API from a terminal.
//
// Usage:
//
//	fleetctl [-api URL] [-email E] [-password P] <command> [flags]
//
// Credentials default to FLEET_API, FLEET_EMAIL and FLEET_PASSWORD, read
// from the environment or a .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/client"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/outcome"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, app *app, args []string) error
}

var commands = []command{
	{"me", "show the signed-in user", runMe},
	{"dashboard", "show counts", runDashboard},
	{"vessels", "list vessels", runVessels},
	{"templates", "list templates [-category C]", runTemplates},
	{"template", "show one template -id ID", runTemplate},
	{"new-template", "create or update a template from JSON -file F [-id ID]", runNewTemplate},
	{"submissions", "list submissions [-tab all|pending|action] [-vessel V] [-status S]", runSubmissions},
	{"show", "render a submission -id ID", runShow},
	{"trigger", "trigger work -vessel V -templates a,b [-crew x,y]", runTrigger},
	{"fill", "save answers -id ID -answers JSON [-submit]", runFill},
	{"approve", "approve a submission -id ID [-notes N]", runApprove},
	{"reject", "reject a submission -id ID [-notes N]", runReject},
	{"export", "export a template's submissions -template ID -out FILE", runExport},
	{"upload-manuals", "upload manual files -type FPM|SMM|CPM|Other [-title T] [-version V] FILE...", runUploadManuals},
}

func main() {
	_ = godotenv.Load()

	api := flag.String("api", envOr("FLEET_API", "http://localhost:8080/api/v1"), "API base URL")
	email := flag.String("email", os.Getenv("FLEET_EMAIL"), "login email")
	password := flag.String("password", os.Getenv("FLEET_PASSWORD"), "login password")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := lookup(flag.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := newApp(ctx, *api, *email, *password)
	if err == nil {
		err = cmd.run(ctx, a, flag.Args()[1:])
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: fleetctl [flags] <command> [command flags]\n\nflags:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-15s %s\n", c.name, c.usage)
	}
}

// describe turns an error into the one line a user sees.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrNoCredential):
		return "not signed in: set -email and -password"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("error (%d): %s", apiErr.Status, apiErr.Detail)
	}
	switch outcome.KindOf(err) {
	case outcome.KindValidation:
		return "invalid: " + err.Error()
	case outcome.KindBusy:
		return "busy: " + err.Error()
	}
	return "error: " + err.Error()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
