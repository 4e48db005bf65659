package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/zliel/vtsgo"
	"github.com/zliel/vtsgo/internal/config"
	"github.com/zliel/vtsgo/internal/tokenstore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return nil
	}

	switch args[0] {
	case "help", "--help", "-h":
		printUsage()
		return nil
	case "version", "--version", "-v":
		fmt.Println("vtsctl v1.0.0")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	switch args[0] {
	case "stats":
		return statsCommand(ctx, client)
	case "model":
		return modelCommand(ctx, client)
	case "models":
		return modelsCommand(ctx, client)
	case "hotkeys":
		return hotkeysCommand(ctx, client)
	case "trigger":
		if len(args) < 2 {
			return fmt.Errorf("usage: vtsctl trigger <hotkeyID>")
		}
		return triggerCommand(ctx, client, args[1])
	case "events":
		if len(args) < 2 {
			return fmt.Errorf("usage: vtsctl events <eventName> [eventName...]")
		}
		return eventsCommand(ctx, client, args[1:])
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func connect(ctx context.Context, cfg *config.Config) (*vtsgo.Client, error) {
	store, err := tokenstore.New(cfg.HomeDir)
	if err != nil {
		return nil, err
	}

	opts := []vtsgo.Option{
		vtsgo.WithURL(cfg.URL),
		vtsgo.WithTokenStore(store),
	}
	if cfg.Debug {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
		opts = append(opts, vtsgo.WithLogger(logger))
	}
	if cfg.LogoPath != "" {
		logo, err := os.ReadFile(cfg.LogoPath)
		if err != nil {
			return nil, fmt.Errorf("read logo: %w", err)
		}
		opts = append(opts, vtsgo.WithLogo(base64.StdEncoding.EncodeToString(logo)))
	}

	client, err := vtsgo.Connect(ctx, cfg.PluginName, cfg.PluginDeveloper, opts...)
	if err != nil {
		return nil, err
	}

	auth, err := client.Authenticate(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}
	if !auth.Authenticated {
		client.Close()
		return nil, fmt.Errorf("authentication refused: %s", auth.Reason)
	}
	return client, nil
}

func statsCommand(ctx context.Context, client *vtsgo.Client) error {
	stats, err := client.Statistics(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("VTube Studio %s\n", stats.VTubeStudioVersion)
	fmt.Printf("  uptime:    %s\n", (time.Duration(stats.Uptime) * time.Millisecond).Round(time.Second))
	fmt.Printf("  framerate: %d\n", stats.Framerate)
	fmt.Printf("  plugins:   %d connected, %d allowed\n", stats.ConnectedPlugins, stats.AllowedPlugins)
	return nil
}

func modelCommand(ctx context.Context, client *vtsgo.Client) error {
	model, err := client.CurrentModel(ctx)
	if err != nil {
		return err
	}
	if !model.ModelLoaded {
		fmt.Println("no model loaded")
		return nil
	}
	fmt.Printf("%s (%s)\n", model.ModelName, model.ModelID)
	fmt.Printf("  file:     %s\n", model.VTSModelName)
	fmt.Printf("  position: x=%.2f y=%.2f rotation=%.1f size=%.1f\n",
		model.ModelPosition.PositionX, model.ModelPosition.PositionY,
		model.ModelPosition.Rotation, model.ModelPosition.Size)
	return nil
}

func modelsCommand(ctx context.Context, client *vtsgo.Client) error {
	models, err := client.AvailableModels(ctx)
	if err != nil {
		return err
	}
	for _, m := range models.AvailableModels {
		marker := " "
		if m.ModelLoaded {
			marker = "*"
		}
		fmt.Printf("%s %s  %s\n", marker, m.ModelID, m.ModelName)
	}
	return nil
}

func hotkeysCommand(ctx context.Context, client *vtsgo.Client) error {
	hotkeys, err := client.Hotkeys(ctx)
	if err != nil {
		return err
	}
	if !hotkeys.ModelLoaded {
		fmt.Println("no model loaded")
		return nil
	}
	for _, hk := range hotkeys.AvailableHotkeys {
		name := hk.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("%s  %-24s %s\n", hk.HotkeyID, hk.Type, name)
	}
	return nil
}

func triggerCommand(ctx context.Context, client *vtsgo.Client, hotkeyID string) error {
	result, err := client.TriggerHotkey(ctx, hotkeyID)
	if err != nil {
		return err
	}
	fmt.Printf("triggered %s\n", result.HotkeyID)
	return nil
}

func eventsCommand(ctx context.Context, client *vtsgo.Client, names []string) error {
	for _, name := range names {
		_, err := client.Subscribe(ctx, name, func(ev vtsgo.Event) {
			fmt.Printf("%s %s %s\n", time.Now().Format(time.RFC3339), ev.Name, ev.Data)
		}, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "subscribed to %s\n", name)
	}

	<-ctx.Done()
	return nil
}

func printUsage() {
	fmt.Println(`vtsctl - VTube Studio API command line client

Usage: vtsctl <command> [args]

Commands:
  stats                     show host statistics
  model                     show the currently loaded model
  models                    list available models
  hotkeys                   list hotkeys of the current model
  trigger <hotkeyID>        trigger a hotkey
  events <name> [name...]   subscribe and print events until interrupted
  version                   print version
  help                      show this help

Configuration is read from ~/.vtsgo/config.toml (or VTSGO_CONFIG) and
VTSGO_* environment variables (VTSGO_URL, VTSGO_PLUGIN_NAME,
VTSGO_PLUGIN_DEVELOPER, VTSGO_LOGO, VTSGO_HOME_DIR, VTSGO_DEBUG).`)
}
