package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cortejtech/agency-admin/internal/db"
	"github.com/cortejtech/agency-admin/internal/siteconfig"
)

var (
	// ErrInvalidPair is returned for a settings argument without "=".
	ErrInvalidPair = errors.New("expected key=value")

	// ErrUnknownKey is returned for settings keys the site does not use.
	ErrUnknownKey = errors.New("unknown settings key")
)

func init() { //nolint: gochecknoinits
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

var (
	settingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "Show or change the site settings",
	}

	settingsShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the effective site settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overlay, err := openOverlay(cmd.Context())
			if err != nil {
				return err
			}

			values, err := overlay.Load(cmd.Context())
			if err != nil {
				return err
			}

			printSettings(cmd.OutOrStdout(), values)

			return nil
		},
	}

	settingsSetCmd = &cobra.Command{
		Use:     "set key=value...",
		Short:   "Store site settings",
		Example: "agency-admin settings set site_name=CortejTech contact_email=info@cortejtech.com",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parsePairs(args)
			if err != nil {
				return err
			}

			overlay, err := openOverlay(cmd.Context())
			if err != nil {
				return err
			}

			if err = overlay.SaveBatch(cmd.Context(), values); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %d setting(s)\n", len(values))

			return nil
		},
	}
)

func openOverlay(ctx context.Context) (*siteconfig.Overlay, error) {
	gormDB, err := db.Open(&cfg)
	if err != nil {
		return nil, err
	}

	return siteconfig.New(siteconfig.DBStore{DB: gormDB}, siteconfig.CacheFromConfig(ctx, cfg.Redis)), nil
}

// parsePairs turns key=value arguments into settings. Unknown keys are rejected.
func parsePairs(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))

	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%q: %w", arg, ErrInvalidPair)
		}

		values[k] = v
	}

	if unknown := siteconfig.Unknown(values); len(unknown) > 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(unknown, ", "), ErrUnknownKey)
	}

	return values, nil
}

func printSettings(w io.Writer, values siteconfig.Settings) {
	for _, k := range siteconfig.Keys {
		_, _ = fmt.Fprintf(w, "%-16s %s\n", k, values.Get(k))
	}
}
