package main

import (
	"fmt"

	"dialogue-actions/internal/actions"
	"dialogue-actions/internal/common/domain"
	"dialogue-actions/internal/common/logger"
	"dialogue-actions/pkg/registry"

	"github.com/spf13/cobra"
)

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "Print the catalog of enabled actions as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dom, err := domain.Load(cfg.Domain.Path)
		if err != nil {
			return err
		}
		reg := registry.New()
		if err := actions.Register(reg, cfg, dom, actions.Dependencies{}, logger.NewNoOpLogger()); err != nil {
			return err
		}
		return reg.WriteCatalog(cmd.OutOrStdout(), cfg.App.Version)
	},
}

var checkConfigCmd = &cobra.Command{
	Use:   "check-config",
	Short: "Validate the configuration and domain tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dom, err := domain.Load(cfg.Domain.Path)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "config ok: %s %s (%s)\n", cfg.App.Name, cfg.App.Version, cfg.App.Environment)
		fmt.Fprintf(out, "domain ok: version %s, %d categories, %d cuisines\n", dom.Version, len(dom.Localization), len(dom.Cuisines))
		return nil
	},
}
