// USB Gatekeeper - physical-presence authentication for logins.
//
// usbgate decides whether a login may proceed based on whether a USB device
// matching the login's profile is physically attached. The host
// authentication framework (PAM via pam_exec, a login script, sshd's
// AuthorizedKeysCommand wrapper) invokes `usbgate check <login>` and maps
// the exit code onto allow/deny.
//
// Subcommands:
//
//	check <login>   run one authentication attempt (exit 0 allow, 1 deny)
//	list            print the currently attached devices
//	validate        check config and profiles without touching the bus
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerrad567/usbgate/internal/gatekeeper"
	"github.com/nerrad567/usbgate/internal/infrastructure/config"
	"github.com/nerrad567/usbgate/internal/infrastructure/database"
	"github.com/nerrad567/usbgate/internal/infrastructure/logging"
	"github.com/nerrad567/usbgate/internal/profile"
	"github.com/nerrad567/usbgate/internal/usb"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0"
var version = "dev"

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// Exit codes. The check subcommand is the host-framework boundary, so the
// codes are the contract: 0 is the only code that ever grants access.
const (
	exitAllow = 0
	exitDeny  = 1
	exitUsage = 2
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdout))
}

// run is the actual application logic, separated from main for testability.
// It returns the process exit code; anything but exitAllow must be treated
// as a denial by authentication callers.
func run(ctx context.Context, args []string, out io.Writer) int {
	fs := flag.NewFlagSet("usbgate", flag.ContinueOnError)
	configFlag := fs.String("config", "", "path to config file (default $USBGATE_CONFIG or "+defaultConfigPath+")")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	log := logging.Default()

	cfg, err := config.Load(configPath(*configFlag))
	if err != nil {
		// Config problems fail closed: a caller waiting on an exit code must
		// never see 0 here.
		log.Error("loading config", "error", err)
		return exitUsage
	}
	log = logging.New(cfg.Logging, version)

	switch cmd := fs.Arg(0); cmd {
	case "check":
		login := fs.Arg(1)
		if login == "" {
			fmt.Fprintln(os.Stderr, "usage: usbgate check <login>")
			return exitUsage
		}
		return runCheck(ctx, cfg, log, login)
	case "list":
		return runList(ctx, cfg, log, out)
	case "validate":
		return runValidate(ctx, cfg, log, out)
	case "":
		fmt.Fprintln(os.Stderr, "usage: usbgate [-config path] check <login> | list | validate")
		return exitUsage
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		return exitUsage
	}
}

// runCheck performs one authentication attempt for the given login.
func runCheck(ctx context.Context, cfg *config.Config, log *logging.Logger, login string) int {
	model, cleanup, err := loadModel(ctx, cfg)
	if err != nil {
		log.Error("loading profiles", "login", login, "error", err)
		return exitDeny
	}
	defer cleanup()

	session := usb.NewSession(usb.Options{ReuseSession: cfg.USB.ReuseSession})
	session.SetLogger(log)
	defer func() {
		if err := session.Close(); err != nil {
			log.Error("closing usb session", "error", err)
		}
	}()

	auth := gatekeeper.New(session)
	auth.SetLogger(log)

	if auth.Decide(ctx, model, login) == gatekeeper.Allow {
		return exitAllow
	}
	return exitDeny
}

// runList enumerates the bus and prints the attached devices.
func runList(ctx context.Context, cfg *config.Config, log *logging.Logger, out io.Writer) int {
	session := usb.NewSession(usb.Options{ReuseSession: cfg.USB.ReuseSession})
	session.SetLogger(log)
	defer func() {
		if err := session.Close(); err != nil {
			log.Error("closing usb session", "error", err)
		}
	}()

	devices, err := session.Devices(ctx)
	if err != nil {
		log.Error("enumerating bus", "error", err)
		return exitUsage
	}

	for _, dev := range devices {
		fmt.Fprintln(out, dev.String())
	}
	fmt.Fprintf(out, "%d device(s) attached\n", len(devices))
	return exitAllow
}

// runValidate loads config and profiles and reports problems without
// touching the bus.
func runValidate(ctx context.Context, cfg *config.Config, log *logging.Logger, out io.Writer) int {
	model, cleanup, err := loadModel(ctx, cfg)
	if err != nil {
		log.Error("profiles invalid", "error", err)
		fmt.Fprintf(out, "profiles invalid: %v\n", err)
		return exitUsage
	}
	defer cleanup()

	fmt.Fprintf(out, "profiles valid: %d user(s)\n", model.UserCount())
	for _, user := range model.Users() {
		for _, fp := range user.Fingerprints {
			if fp.IsUnrestricted() {
				fmt.Fprintf(out, "warning: %s has a fingerprint that matches any device\n", user.Login)
			}
		}
	}
	return exitAllow
}

// loadModel builds the profile model from the configured source. The cleanup
// function releases the source's resources and is safe to call exactly once.
func loadModel(ctx context.Context, cfg *config.Config) (*profile.Model, func(), error) {
	source, cleanup, err := openSource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	rec, err := source.Load(ctx)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	model, err := profile.FromRecord(rec)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return model, cleanup, nil
}

// openSource constructs the configured profiles source.
func openSource(ctx context.Context, cfg *config.Config) (profile.Source, func(), error) {
	switch cfg.Profiles.Source {
	case config.SourceSQLite:
		db, err := database.Open(database.Config{
			Path:        cfg.Profiles.Database.Path,
			WALMode:     cfg.Profiles.Database.WALMode,
			BusyTimeout: cfg.Profiles.Database.BusyTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening profiles store: %w", err)
		}
		repo := profile.NewSQLiteRepository(db.DB)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, func() { _ = db.Close() }, nil
	default:
		return profile.NewFileSource(cfg.Profiles.File), func() {}, nil
	}
}

// configPath resolves the configuration file path: -config flag, then
// USBGATE_CONFIG, then the default.
func configPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if path := os.Getenv("USBGATE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
