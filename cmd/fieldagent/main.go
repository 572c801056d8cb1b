package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fieldops/config"
	"fieldops/internal/client"
	"fieldops/internal/domain/entity"
	"fieldops/internal/errors"
	logs "fieldops/internal/infra/log"
	"fieldops/internal/realtime"
)

// Supported subcommands:
// - run:    connect, report positions and follow server events
// - submit: file a discount request over REST

const apiTimeout = 10 * time.Second

func main() {
	runCmd := flag.NewFlagSet("run", flag.ExitOnError)
	runUser := runCmd.String("user", "", "User id (overrides client.userId)")
	runRole := runCmd.String("role", "", "Role: FIELD_AGENT or ADMIN (overrides client.role)")
	runLat := runCmd.Float64("lat", 0, "Latitude reported by the pinger (overrides client.latitude)")
	runLng := runCmd.Float64("lng", 0, "Longitude reported by the pinger (overrides client.longitude)")

	submitCmd := flag.NewFlagSet("submit", flag.ExitOnError)
	submitUser := submitCmd.String("user", "", "User id (overrides client.userId)")
	submitClient := submitCmd.String("client", "", "Client id the discount is for")
	submitPercentage := submitCmd.Float64("percentage", -1, "Discount percentage in [0,100]")
	submitJustification := submitCmd.String("justification", "", "Why the discount is needed")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "run":
		_ = runCmd.Parse(os.Args[2:])
		overrideString(&cfg.Client.UserID, *runUser)
		overrideString(&cfg.Client.Role, *runRole)
		runCmd.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "lat":
				cfg.Client.Latitude = *runLat
			case "lng":
				cfg.Client.Longitude = *runLng
			}
		})
		err = run(ctx, cfg, logger)
	case "submit":
		_ = submitCmd.Parse(os.Args[2:])
		overrideString(&cfg.Client.UserID, *submitUser)
		cfg.Client.Role = entity.RoleFieldAgent.String()
		err = submit(ctx, cfg, *submitClient, *submitPercentage, *submitJustification)
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: fieldagent <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run     Connect to the coordinator and report positions")
	fmt.Println("  submit  Submit a discount request")
	fmt.Println()
	fmt.Println("Use 'fieldagent <command> -h' for command options")
}

func overrideString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func identityFrom(cfg *config.Config) (client.Identity, error) {
	if cfg.Client.UserID == "" {
		return client.Identity{}, errors.New("client.userId is required")
	}
	role, ok := entity.ParseRole(cfg.Client.Role)
	if !ok {
		return client.Identity{}, errors.Errorf("invalid client.role %q", cfg.Client.Role)
	}

	return client.Identity{UserID: cfg.Client.UserID, Role: role, Token: cfg.Client.Token}, nil
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	identity, err := identityFrom(cfg)
	if err != nil {
		return err
	}

	dialer := client.NewWebsocketDialer(cfg.Client.URL, cfg.Realtime.WriteTimeout)
	c := client.New(dialer, identity, client.Options{
		MaxAttempts: cfg.Reconnect.MaxAttempts,
		Interval:    cfg.Reconnect.Interval,
	}, logger)

	locations := client.NewLocationBoard()
	pending := client.NewPendingRequests()
	inbox := client.NewInboxView()
	client.Subscribe(c.Bus(), logger, locations, pending, inbox)
	c.Bus().Subscribe(realtime.EventError, func(ev realtime.Event) {
		var payload realtime.ErrorPayload
		if err := ev.Decode(&payload); err == nil {
			logger.Warn("Server rejected event",
				slog.String("code", payload.Code),
				slog.String("event", payload.Event),
				slog.String("details", payload.Details),
			)
		}
	})

	api := client.NewAPI(cfg.Client.APIURL, identity, apiTimeout)
	c.OnStateChange(func(state client.State) {
		if state != client.StateConnected {
			return
		}
		// fetch-on-connect: pushes missed while away are recovered from REST
		go reconcile(ctx, api, identity, pending, inbox, logger)
	})

	if identity.Role == entity.RoleFieldAgent {
		pinger := client.NewPinger(cfg.Client.PingInterval, func() error {
			event, err := realtime.NewEvent(realtime.EventSendLocation, map[string]any{
				"userId":    identity.UserID,
				"latitude":  cfg.Client.Latitude,
				"longitude": cfg.Client.Longitude,
			})
			if err != nil {
				return err
			}

			return c.Send(event)
		}, logger)
		c.OnStateChange(pinger.Follow)
	}

	logger.Info("Connecting", slog.String("url", cfg.Client.URL), slog.String("role", identity.Role.String()))

	return c.Run(ctx)
}

func reconcile(ctx context.Context, api *client.API, identity client.Identity, pending *client.PendingRequests, inbox *client.InboxView, logger *slog.Logger) {
	if identity.Role == entity.RoleAdmin {
		since := pending.Version()
		listing, err := api.PendingRequests(ctx)
		if err != nil {
			logger.Warn("Failed to fetch pending requests", slog.Any("error", err))
		} else {
			pending.Reconcile(listing, since)
			logger.Info("Pending discount requests", slog.Int("count", len(pending.List())))
		}
	}

	since := inbox.Version()
	view, err := api.Inbox(ctx, 0)
	if err != nil {
		logger.Warn("Failed to fetch inbox", slog.Any("error", err))

		return
	}
	inbox.Reconcile(view.Notifications, since)
	logger.Info("Inbox synced", slog.Int("unread", inbox.Unread()))
}

func submit(ctx context.Context, cfg *config.Config, clientID string, percentage float64, justification string) error {
	identity, err := identityFrom(cfg)
	if err != nil {
		return err
	}

	api := client.NewAPI(cfg.Client.APIURL, identity, apiTimeout)
	request, err := api.SubmitDiscount(ctx, clientID, percentage, justification)
	if err != nil {
		return errors.Wrap(err, "submit discount request")
	}

	fmt.Printf("Discount request %s is %s\n", request.ID, request.State)

	return nil
}
