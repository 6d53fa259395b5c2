package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"foodtruth/internal/app"
	"foodtruth/internal/config"

	"github.com/spf13/cobra"
)

// opener builds the application for one command run.
type opener func(ctx context.Context, backend string) (*app.App, *config.Config, error)

type cli struct {
	open    opener
	backend string
}

func newRootCommand(open opener) *cobra.Command {
	c := &cli{open: open}

	cmd := &cobra.Command{
		Use:   "foodtruth",
		Short: "FoodTruth barcode lookup and additive analysis",
		Long: `FoodTruth resolves product barcodes against Open Food Facts, classifies
food additives by risk and checks products against your dietary preferences.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&c.backend, "store", "", "Store backend override (memory, badger, sqlite, postgres, redis)")
	cmd.AddCommand(
		c.newLookupCmd(),
		c.newAdditiveCmd(),
		c.newHistoryCmd(),
		c.newPrefsCmd(),
		c.newCacheCmd(),
		c.newServeCmd(),
	)
	return cmd
}

// withApp opens the application, runs fn and closes it.
func (c *cli) withApp(cmd *cobra.Command, fn func(a *app.App, cfg *config.Config) error) error {
	a, cfg, err := c.open(cmd.Context(), c.backend)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a, cfg)
}

func (c *cli) newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <barcode>",
		Short: "Look a barcode up and print the enriched product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App, _ *config.Config) error {
				product, err := a.Products.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), product)
			})
		},
	}
}

func (c *cli) newAdditiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "additive <code>",
		Short: "Show the knowledge-base record for an additive code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App, _ *config.Config) error {
				record, err := a.AdditiveSvc.Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("%s: %w", args[0], err)
				}
				return printJSON(cmd.OutOrStdout(), record)
			})
		},
	}
}

func (c *cli) newHistoryCmd() *cobra.Command {
	var clearAll bool
	var remove string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, prune or clear the scan history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App, _ *config.Config) error {
				ctx := cmd.Context()
				switch {
				case clearAll:
					a.History.Clear(ctx)
					fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
					return nil
				case remove != "":
					if !a.History.Remove(ctx, remove) {
						return fmt.Errorf("%s is not in the history", remove)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", remove)
					return nil
				}
				return printJSON(cmd.OutOrStdout(), a.History.List(ctx))
			})
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Remove every history entry")
	cmd.Flags().StringVar(&remove, "remove", "", "Remove one barcode from the history")
	cmd.MarkFlagsMutuallyExclusive("clear", "remove")
	return cmd
}

func (c *cli) newPrefsCmd() *cobra.Command {
	var toggle string
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or toggle dietary preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App, _ *config.Config) error {
				ctx := cmd.Context()
				if toggle == "" {
					return printJSON(cmd.OutOrStdout(), a.Preferences.Get(ctx))
				}
				prefs, err := a.Preferences.Toggle(ctx, toggle)
				if err != nil {
					return fmt.Errorf("%s: %w", toggle, err)
				}
				return printJSON(cmd.OutOrStdout(), prefs)
			})
		},
	}
	cmd.Flags().StringVar(&toggle, "toggle", "", "Preference to flip (vegetarian, vegan, glutenFree)")
	return cmd
}

func (c *cli) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the product cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App, _ *config.Config) error {
				a.Products.ClearCache(cmd.Context())
				fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
				return nil
			})
		},
	})
	return cmd
}

func (c *cli) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App, cfg *config.Config) error {
				if err := cfg.ValidateServer(); err != nil {
					return err
				}
				return a.Serve(cmd.Context(), cfg.Server, cfg.Auth.APIKey)
			})
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
