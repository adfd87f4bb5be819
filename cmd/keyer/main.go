package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli"
	"github.com/valerio/go-keyer/keyer"
	"github.com/valerio/go-keyer/keyer/backend"
	"github.com/valerio/go-keyer/keyer/backend/gpio"
	"github.com/valerio/go-keyer/keyer/backend/headless"
	"github.com/valerio/go-keyer/keyer/backend/sdl2"
	"github.com/valerio/go-keyer/keyer/backend/terminal"
	"github.com/valerio/go-keyer/keyer/iambic"
	"github.com/valerio/go-keyer/keyer/timing"
)

func main() {
	app := newApp()

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running keyer", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	defaults := keyer.DefaultConfig()
	pins := gpio.DefaultPins()

	app := cli.NewApp()
	app.Name = "keyer"
	app.Description = "An iambic Morse paddle keyer"
	app.Usage = "keyer [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:   "wpm",
			Usage:  fmt.Sprintf("Keying speed in words per minute (%d-%d)", keyer.MinWPM, keyer.MaxWPM),
			Value:  defaults.WPM,
			EnvVar: "KEYER_WPM",
		},
		cli.StringFlag{
			Name:   "mode",
			Usage:  "Iambic mode, A or B",
			Value:  defaults.Mode.String(),
			EnvVar: "KEYER_MODE",
		},
		cli.UintFlag{
			Name:  "tone-duty",
			Usage: "Sidetone PWM duty cycle in percent (0 disables the tone)",
			Value: uint(defaults.ToneDuty),
		},
		cli.StringFlag{
			Name:   "backend",
			Usage:  "Platform to run on: headless, terminal, sdl2 or gpio",
			Value:  "terminal",
			EnvVar: "KEYER_BACKEND",
		},
		cli.StringFlag{
			Name:  "script",
			Usage: "Paddle script for the headless backend (. dit, - dah, = both, _ none)",
		},
		cli.StringFlag{
			Name:  "script-file",
			Usage: "Read the headless paddle script from a file",
		},
		cli.BoolFlag{
			Name:  "realtime",
			Usage: "Replay a headless script at real speed instead of on a virtual clock",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn or error",
			Value: "info",
		},
		cli.StringFlag{
			Name:  "dit-pin",
			Usage: "GPIO pin wired to the dit paddle",
			Value: pins.Dit,
		},
		cli.StringFlag{
			Name:  "dah-pin",
			Usage: "GPIO pin wired to the dah paddle",
			Value: pins.Dah,
		},
		cli.StringFlag{
			Name:  "led-pin",
			Usage: "GPIO pin driving the active-low LED (empty to disable)",
			Value: pins.LED,
		},
		cli.StringFlag{
			Name:  "buzzer-pin",
			Usage: "GPIO pin driving the buzzer (empty to disable)",
			Value: pins.Buzzer,
		},
		cli.StringFlag{
			Name:  "tone-pin",
			Usage: "GPIO pin for the PWM sidetone (empty to disable)",
			Value: pins.Tone,
		},
	}
	app.Action = runKeyer
	return app
}

func runKeyer(c *cli.Context) error {
	level, err := parseLogLevel(c.String("log-level"))
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	config, err := configFromContext(c)
	if err != nil {
		return err
	}

	clock := timing.NewRealClock()
	var replay *headless.Backend
	var b backend.Backend

	switch name := c.String("backend"); name {
	case "headless":
		script, err := loadScript(c)
		if err != nil {
			return err
		}
		if !c.Bool("realtime") {
			clock = timing.NewVirtualClock(time.Unix(0, 0))
		}
		replay = headless.New(script, clock)
		b = replay
	case "terminal":
		b = terminal.New()
	case "sdl2":
		b = sdl2.New()
	case "gpio":
		b = gpio.New(pinsFromContext(c))
	default:
		return fmt.Errorf("unknown backend %q", name)
	}

	session, err := keyer.NewSession(config, b, clock)
	if err != nil {
		return err
	}
	defer session.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := session.Run(ctx); err != nil {
		return err
	}

	if replay != nil {
		fmt.Println(replay.Elements(session.Unit()))
		fmt.Print(replay.Timeline(session.Unit()))
	}
	return nil
}

func configFromContext(c *cli.Context) (keyer.Config, error) {
	mode, err := iambic.ParseIambicMode(c.String("mode"))
	if err != nil {
		return keyer.Config{}, fmt.Errorf("%w: %v", keyer.ErrInvalidMode, err)
	}

	duty := c.Uint("tone-duty")
	if duty > 100 {
		return keyer.Config{}, fmt.Errorf("%w: %d", keyer.ErrInvalidToneDuty, duty)
	}

	config := keyer.Config{
		WPM:      c.Int("wpm"),
		Mode:     mode,
		ToneDuty: uint8(duty),
	}
	return config, config.Validate()
}

func pinsFromContext(c *cli.Context) gpio.Pins {
	pins := gpio.DefaultPins()
	pins.Dit = c.String("dit-pin")
	pins.Dah = c.String("dah-pin")
	pins.LED = c.String("led-pin")
	pins.Buzzer = c.String("buzzer-pin")
	pins.Tone = c.String("tone-pin")
	return pins
}

func loadScript(c *cli.Context) ([]backend.Contacts, error) {
	text := c.String("script")
	if path := c.String("script-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read script: %v", err)
		}
		text = string(data)
	}
	if text == "" && c.NArg() > 0 {
		text = strings.Join(c.Args(), "")
	}
	if text == "" {
		return nil, errors.New("headless backend requires --script or --script-file")
	}
	return headless.ParseScript(text)
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
