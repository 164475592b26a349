// NeuroSafe terminal client.
//
// Drives the analysis workflow against the external backend: log in with a
// display name and role, submit agreement text with a stress context, and
// review the locally persisted history of past analyses.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/neurosafe/neurosafe/internal/analysis"
	"github.com/neurosafe/neurosafe/internal/app"
	"github.com/neurosafe/neurosafe/internal/config"
	"github.com/neurosafe/neurosafe/internal/domain"
	"github.com/neurosafe/neurosafe/internal/history"
	"github.com/neurosafe/neurosafe/internal/session"
	"github.com/neurosafe/neurosafe/internal/store"
)

func main() {
	// Log to stderr so command output stays clean.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "neurosafe",
		Short:         "Contract risk analysis for people under pressure",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

// runtime wires configuration, the durable store, and the application
// state for one command invocation.
type runtime struct {
	cfg  *config.Config
	repo store.Repository
	app  *app.App
}

func newRuntime() (*runtime, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize local store: %w", err)
	}

	sessions := session.NewStore(repo)
	hist := history.NewStore(repo, cfg.HistoryLimit)
	analyzer := analysis.NewClient(cfg.APIBaseURL, hist)

	a := app.New(sessions, hist, analyzer)
	if _, err := a.Resume(cmdContext()); err != nil {
		_ = repo.Close()
		return nil, err
	}

	return &runtime{cfg: cfg, repo: repo, app: a}, nil
}

func (rt *runtime) Close() {
	if err := rt.repo.Close(); err != nil {
		slog.Warn("Failed to close local store", "error", err)
	}
}

func newLoginCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "login <display-name>",
		Short: "Create the local session and enter the workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			sess, err := rt.app.Login(cmdContext(), args[0], domain.Role(role))
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s (%s). You are now on %s.\n", sess.Name, sess.Role, rt.app.Route())
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Your role: Student, Freelancer, or Founder")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.app.Logout(cmdContext()); err != nil {
				return err
			}

			fmt.Printf("Logged out. You are now on %s.\n", rt.app.Route())
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			sess, err := rt.app.Session(cmdContext())
			if err != nil {
				return err
			}
			if sess == nil {
				fmt.Println("Not logged in.")
				return nil
			}

			fmt.Printf("%s (%s)\n", sess.Name, sess.Role)
			return nil
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	var environment string

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Submit agreement text for risk analysis",
		Long: "Submit agreement text for risk analysis.\n\n" +
			"Reads the text from the given file, or from stdin when no file is\n" +
			"given. The result is rendered and recorded in the local history.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args)
			if err != nil {
				return err
			}

			req := domain.AnalysisRequest{
				Text:        text,
				Environment: domain.Environment(environment),
			}

			// Form-level check for immediate feedback; the client
			// validates again before touching the network.
			var vErr *analysis.ValidationError
			if err := analysis.Validate(req); errors.As(err, &vErr) {
				return fmt.Errorf("invalid %s: %s", vErr.Field, vErr.Message)
			}

			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			fmt.Println("Analyzing...")
			resp, err := rt.app.Analyze(cmdContext(), req)
			if err != nil {
				return err
			}

			fmt.Println(renderAssessment(*resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&environment, "environment", "", "How you feel right now: Calm, Stressed, or Overwhelmed")
	_ = cmd.MarkFlagRequired("environment")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show past analyses, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			entries, err := rt.app.History(cmdContext())
			if err != nil {
				return err
			}

			fmt.Println(renderHistory(entries))
			return nil
		},
	}
}

func readText(args []string) (string, error) {
	if len(args) == 1 {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read agreement text: %w", err)
		}
		return string(raw), nil
	}

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read agreement text from stdin: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
