package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pantry/renderer"
	"github.com/google/subcommands"
)

type settingsCmd struct {
	currency      string
	theme         string
	notifications string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change the user settings" }
func (*settingsCmd) Usage() string {
	return `gro settings [-currency <code>] [-theme light|dark|toggle] [-notifications on|off]

  Without flags, shows the settings. The currency only changes how amounts
  are displayed: they are always stored in the canonical currency.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "Display currency code.")
	f.StringVar(&c.theme, "theme", "", "Theme: light, dark or toggle.")
	f.StringVar(&c.notifications, "notifications", "", "Purchase notifications: on or off.")
}

func (c *settingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var notifications *bool
	switch c.notifications {
	case "":
	case "on", "true":
		notifications = new(bool)
		*notifications = true
	case "off", "false":
		notifications = new(bool)
	default:
		fmt.Fprintf(os.Stderr, "Error: -notifications must be on or off, got %q\n", c.notifications)
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		if c.currency != "" {
			if err := s.Settings.SetCurrency(ctx, c.currency); err != nil {
				return err
			}
		}
		switch c.theme {
		case "":
		case "toggle":
			if _, err := s.Settings.ToggleTheme(ctx); err != nil {
				return err
			}
		default:
			if err := s.Settings.SetTheme(ctx, c.theme); err != nil {
				return err
			}
		}
		if notifications != nil {
			if err := s.Settings.SetNotifications(ctx, *notifications); err != nil {
				return err
			}
		}
		s.print(renderer.Settings(s.Settings.Get(), s.Settings.Rates().Currencies()))
		return nil
	})
}

