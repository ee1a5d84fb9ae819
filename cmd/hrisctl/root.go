package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/UnknownOlympus/athena/internal/access"
	"github.com/UnknownOlympus/athena/internal/appconfig"
	"github.com/UnknownOlympus/athena/internal/config"
	"github.com/spf13/cobra"
)

// cli carries what the subcommands share after the root has loaded the config.
type cli struct {
	jsonOut bool

	cfg        *config.Config
	app        *appconfig.AppConfig
	authorizer *access.Authorizer
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "hrisctl",
		Short:         "Operate the HR information system",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return c.load()
		},
	}
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "output as JSON")

	root.AddCommand(newTokenCmd(c))
	root.AddCommand(newRolesCmd(c))
	root.AddCommand(newAbilitiesCmd(c))

	return root
}

func (c *cli) load() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	app, err := appconfig.New(cfg.App)
	if err != nil {
		return fmt.Errorf("app config: %w", err)
	}
	authorizer, err := access.NewAuthorizer(app)
	if err != nil {
		return fmt.Errorf("abilities: %w", err)
	}

	c.cfg = cfg
	c.app = app
	c.authorizer = authorizer
	return nil
}

func (c *cli) printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
