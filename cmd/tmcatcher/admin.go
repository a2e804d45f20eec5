package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/tmcatcher/internal/api"
	"github.com/muurk/tmcatcher/internal/config"
	"github.com/muurk/tmcatcher/internal/server"
	"github.com/muurk/tmcatcher/internal/ui"
	"github.com/muurk/tmcatcher/internal/urls"
	"github.com/muurk/tmcatcher/internal/wizard"
)

func init() {
	rootCmd.AddCommand(removeBotCmd)
	rootCmd.AddCommand(deleteLimitCmd)
	rootCmd.AddCommand(exporterCmd)
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Run the registration wizard line by line",
	Long: `Walk through registration without the full-screen TUI: registrant phone,
API key, bot phone and OTP. At the OTP prompt, enter "r" to resend the code
or "b" to go back. At any later step "b N" returns to step N.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegister(cmd, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func runRegister(cmd *cobra.Command, in io.Reader, out io.Writer) error {
	ctx := cmd.Context()
	r := wizard.NewRegistration(cfg)
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprintf(out, "[%d/%d] %s: ", int(r.Step)+1, len(wizard.Steps), r.Step.Label())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return fmt.Errorf("registration aborted")
		}
		v := strings.TrimSpace(scanner.Text())

		done := r.Completed
		switch {
		case v == "b" && r.Step > wizard.StepRegisterPhone:
			r.Back()
			continue
		case strings.HasPrefix(v, "b "):
			if step, ok := parseStep(strings.TrimSpace(v[2:])); ok && step < r.Step {
				r.JumpBack(step)
			}
			continue
		case v == "r" && r.Step == wizard.StepBotOTP:
			r.RunResend(ctx, client)
		default:
			switch r.Step {
			case wizard.StepRegisterPhone:
				r.SetPhone(v)
			case wizard.StepAPIKey:
				r.SetAPIKey(v)
			case wizard.StepBotPhone:
				r.SetBotPhone(v)
			case wizard.StepBotOTP:
				r.SetCode(v)
			}
			if !r.Run(ctx, client) && r.Error == "" {
				continue
			}
		}

		if err := ctx.Err(); err != nil {
			return err
		}
		if r.Error != "" {
			fmt.Fprintln(out, ui.ToneFailure.Line(r.Error))
		}
		if r.Notice != "" {
			fmt.Fprintln(out, ui.ToneSuccess.Line(r.Notice))
		}
		if r.Completed > done {
			return nil
		}
	}
}

// parseStep maps a 1-based step number onto a wizard step
func parseStep(s string) (wizard.Step, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > len(wizard.Steps) {
		return 0, false
	}
	return wizard.Steps[n-1], true
}

var confirmYes bool

var removeBotCmd = &cobra.Command{
	Use:   "remove-bot",
	Short: "Remove the bot session bound to an API key",
	Long: `Delete the bot session bound to an API key. The bot stops catching red
packets until it is logged in again.

You will be asked to type "remove" unless --yes is given.`,
	Example: `  tmcatcher remove-bot --key abc123
  tmcatcher remove-bot --key abc123 --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		if err := confirm(cmd, "Remove bot session", []string{
			"The bot session for API key " + mask(key) + " will be deleted",
			"The bot must log in again with a new OTP",
		}, "remove"); err != nil {
			return err
		}

		printer.PrintHeader("REMOVE BOT", "tmcatcher remove-bot", []api.Field{{Label: "API Key", Value: mask(key)}})
		resp := client.RemoveBotSession(cmd.Context(), key)
		return report(printer.PrintResult("Remove Bot Session", resp, nil, resp), resp)
	},
}

var deleteLimitCmd = &cobra.Command{
	Use:   "delete-limit <key> <amount>",
	Short: "Remove an amount from a key's usage limit",
	Long: `Call the delete-limit host to remove amount from the usage limit of key.
The host must be configured with --limit-url, ` + config.EnvLimitURL + ` or
api.limit_url in the config file.`,
	Example: `  tmcatcher delete-limit abc123 100 --limit-url https://limits.example.com`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		amount, err := strconv.Atoi(args[1])
		if err != nil || amount <= 0 {
			return fmt.Errorf("invalid amount %q: expected a positive integer", args[1])
		}
		if err := confirm(cmd, "Delete limit", []string{
			fmt.Sprintf("%d will be removed from the limit of key %s", amount, mask(key)),
		}, "delete"); err != nil {
			return err
		}

		printer.PrintHeader("DELETE LIMIT", "tmcatcher delete-limit", []api.Field{
			{Label: "Key", Value: mask(key)},
			{Label: "Amount", Value: strconv.Itoa(amount)},
		})
		resp := client.DeleteLimit(cmd.Context(), key, amount)
		return report(printer.PrintResult("Delete Limit", resp, nil, resp), resp)
	},
}

func init() {
	removeBotCmd.Flags().String("key", "", "API key whose bot session is removed")
	_ = removeBotCmd.MarkFlagRequired("key")

	for _, c := range []*cobra.Command{removeBotCmd, deleteLimitCmd} {
		c.Flags().BoolVarP(&confirmYes, "yes", "y", false, "Skip the confirmation prompt")
	}
}

// confirm asks for phrase unless --yes was given
func confirm(cmd *cobra.Command, title string, warnings []string, phrase string) error {
	if confirmYes {
		return nil
	}
	if printer.JSON() || !ui.IsTerminal() {
		return fmt.Errorf("refusing to %s without confirmation; pass --yes", strings.ToLower(title))
	}
	if !ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), title, warnings, phrase) {
		return errReported
	}
	return nil
}

var exporterListen string

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Serve the bot census and API health over HTTP",
	Long: `Start an HTTP server that polls the bot census and the API health and
exposes them as JSON and Prometheus metrics:

  GET /api/census   latest census snapshot
  GET /healthz      exporter and backend health
  GET /metrics      Prometheus metrics`,
	Example: `  tmcatcher exporter
  tmcatcher exporter --listen 127.0.0.1:9464 --log-level info`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("listen") {
			cfg.Exporter.Listen = exporterListen
		}
		srv := server.New(&server.Config{
			Listen:         cfg.Exporter.Listen,
			CensusInterval: cfg.Polling.Census,
			HealthInterval: cfg.Polling.Health,
		}, client)
		return srv.Start()
	},
}

func init() {
	exporterCmd.Flags().StringVar(&exporterListen, "listen", "", "Listen address (default "+urls.DefaultExporterListen+")")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if printer.JSON() {
			return printer.PrintJSON(cfg)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		printer.Print(string(data))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		printer.Println(path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefaultConfig()
		if err != nil {
			return err
		}
		printer.Println("Created " + path)
		return nil
	},
}
