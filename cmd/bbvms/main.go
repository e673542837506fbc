package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/domdoescode/blue-billywig/client"
	"github.com/domdoescode/blue-billywig/internal/logger"
)

var (
	baseURL string
	debug   bool
	logJSON bool
	timeout time.Duration

	// Credentials for commands that need a session. The session only lives
	// as long as one command, so those commands log in first.
	username string
	password string
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bbvms",
		Short:         "Command line client for the Blue Billywig VMS API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logJSON {
				log.Logger = logger.New("bbvms", cmd.ErrOrStderr()).Level(zerolog.InfoLevel)
			} else {
				log.Logger = logger.NewConsole("bbvms", cmd.ErrOrStderr())
			}
			if debug {
				log.Logger = log.Logger.Level(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			}
		},
	}

	cfg, err := client.LoadConfig()
	if err != nil {
		log.Warn().Err(err).Msg("ignoring invalid environment configuration")
		cfg = client.Config{BaseURL: client.DefaultBaseURL}
	}
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", cfg.BaseURL, "Base URL of the VMS (env BBVMS_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", cfg.Debug, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON lines with error stacks")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "Deadline for the whole command")
	rootCmd.PersistentFlags().StringVarP(&username, "username", "u", os.Getenv("BBVMS_USERNAME"), "VMS username")
	rootCmd.PersistentFlags().StringVarP(&password, "password", "p", os.Getenv("BBVMS_PASSWORD"), "VMS password")

	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newCheckSessionCmd())
	rootCmd.AddCommand(newLogOffCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newImageURLCmd())
	rootCmd.AddCommand(newPlayerURLCmd())

	return rootCmd
}

func newClient() (*client.Client, error) {
	return client.New(
		client.WithBaseURL(baseURL),
		client.WithLogger(log.Logger),
		client.WithDebugLogging(debug),
	)
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

// loginIfRequested authenticates when credentials were given.
func loginIfRequested(ctx context.Context, c *client.Client) error {
	if username == "" {
		return nil
	}
	start := time.Now()
	_, err := c.Authenticate(ctx, username, password)
	if err != nil {
		log.Error().Err(err).Str("username", username).Dur("elapsed", time.Since(start)).Msg("login failed")
		return err
	}
	log.Debug().Str("username", username).Dur("elapsed", time.Since(start)).Msg("login completed")
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Fetch a one-time authentication token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			token, err := c.GetRandom(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print the user record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return fmt.Errorf("--username is required")
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			user, err := c.Authenticate(ctx, username, password)
			if err != nil {
				return err
			}
			out := map[string]string{"element": user.Name()}
			for _, a := range user.Attrs {
				out[a.Name.Local] = a.Value
			}
			return printJSON(cmd, out)
		},
	}
}

func newCheckSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-session",
		Short: "Report whether a session exists (logs in first when credentials are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if err := loginIfRequested(ctx, c); err != nil {
				return err
			}
			exists, err := c.CheckSession(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Session exists: %t\n", exists)
			return err
		},
	}
}

func newLogOffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logoff",
		Short: "End the session (logs in first when credentials are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if err := loginIfRequested(ctx, c); err != nil {
				return err
			}
			if err := c.LogOff(ctx); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Logged off")
			return err
		},
	}
}

func newSearchCmd() *cobra.Command {
	var query string
	var params []string
	var legacy bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the media library",
		Long: "Search the media library. With --param the key=value pairs are sent verbatim; " +
			"with --published the query is restricted to published items and 50 results.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sp, err := searchParams(query, params, legacy)
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			if err := loginIfRequested(ctx, c); err != nil {
				return err
			}
			start := time.Now()
			results, err := c.Search(ctx, sp)
			if err != nil {
				return err
			}
			log.Debug().Int("count", len(results)).Dur("elapsed", time.Since(start)).Msg("search completed")
			return printJSON(cmd, results)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Query string")
	cmd.Flags().StringArrayVar(&params, "param", nil, "Extra query parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&legacy, "published", false, "Only published items, at most 50")
	return cmd
}

// searchParams merges the command flags into one parameter set.
func searchParams(query string, params []string, legacy bool) (client.SearchParams, error) {
	sp := client.SearchParams{}
	if legacy {
		sp = client.LegacySearchParams(query)
	} else if query != "" {
		sp["query"] = query
	}
	for _, p := range params {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --param %q, want key=value", p)
		}
		sp[k] = v
	}
	return sp, nil
}

func newImageURLCmd() *cobra.Command {
	var width, height int
	var image string

	cmd := &cobra.Command{
		Use:   "image-url",
		Short: "Print the URL of a scaled image",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), c.ImageURL(width, height, image))
			return err
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "Width in pixels (required)")
	cmd.Flags().IntVar(&height, "height", 0, "Height in pixels (required)")
	cmd.Flags().StringVar(&image, "image", "", "Image path, with leading slash (required)")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func newPlayerURLCmd() *cobra.Command {
	var clipID, playoutID string

	cmd := &cobra.Command{
		Use:   "player-url",
		Short: "Print the embed script URL of a clip",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), c.JSPlayerURL(clipID, playoutID))
			return err
		},
	}
	cmd.Flags().StringVar(&clipID, "clip", "", "Clip ID (required)")
	cmd.Flags().StringVar(&playoutID, "playout", "", "Playout ID (default \""+client.DefaultPlayout+"\")")
	_ = cmd.MarkFlagRequired("clip")
	return cmd
}
