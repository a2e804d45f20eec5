package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/tmcatcher/internal/api"
	"github.com/muurk/tmcatcher/internal/config"
	"github.com/muurk/tmcatcher/internal/countdown"
	"github.com/muurk/tmcatcher/internal/logging"
	"github.com/muurk/tmcatcher/internal/ui"
	"github.com/muurk/tmcatcher/internal/validators"
	"github.com/muurk/tmcatcher/internal/wizard/tui"
)

// Global flags
var (
	baseURL      string
	limitURL     string
	censusPath   string
	timeout      time.Duration
	logLevel     string
	logFile      string
	outputFormat string
)

// Set up by setup before any command runs
var (
	cfg     *config.Config
	client  *api.Client
	printer *ui.Printer
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&baseURL, "base-url", "", "Backend base URL (overrides config and "+config.EnvBaseURL+")")
	flags.StringVar(&limitURL, "limit-url", "", "Delete-limit host URL")
	flags.StringVar(&censusPath, "census-path", "", "Bot census path (default "+api.DefaultCensusPath+")")
	flags.DurationVar(&timeout, "timeout", 0, "HTTP request timeout (e.g. 10s)")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when empty")
	flags.StringVar(&logFile, "log-file", "", "Log file (the TUI defaults to a file in the config directory)")
	flags.StringVarP(&outputFormat, "format", "f", "detailed", "Output format (detailed, json)")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(botsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(generateKeyCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(botLoginCmd)
	rootCmd.AddCommand(verifyOTPCmd)
}

// setup loads configuration, applies flag overrides and starts logging
func setup(cmd *cobra.Command, args []string) error {
	config.LoadDotEnv(3)

	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("base-url") {
		cfg.API.BaseURL = baseURL
	}
	if flags.Changed("limit-url") {
		cfg.API.LimitURL = limitURL
	}
	if flags.Changed("census-path") {
		cfg.API.CensusPath = censusPath
	}
	if flags.Changed("timeout") {
		if timeout <= 0 {
			return fmt.Errorf("--timeout must be positive, got %s", timeout)
		}
		cfg.API.Timeout = timeout
	}

	path := logFile
	if path == "" && !cmd.HasParent() {
		if path, err = config.GetLogPath(); err != nil {
			return fmt.Errorf("failed to resolve log path: %w", err)
		}
	}
	if err := logging.Initialize(logLevel, path); err != nil {
		return err
	}
	cobra.OnFinalize(logging.Sync)

	format, err := ui.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	printer = ui.NewPrinter(os.Stdout, format)
	client = cfg.NewClient()

	logging.Debug("Configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("config", cfg.Path()),
		zap.String("base_url", cfg.API.BaseURL),
	)
	return nil
}

// report turns a printed result into the command's exit status
func report(err error, resp api.Response) error {
	if err != nil {
		return err
	}
	if !resp.Success {
		if resp.Err != nil {
			logging.Debug("Command failed", zap.String("reason", api.GetShortErrorMessage(resp.Err)))
		}
		return errReported
	}
	return nil
}

// mask keeps the last four characters of a secret visible
func mask(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal() {
		return fmt.Errorf("the interactive TUI needs a terminal; see 'tmcatcher --help' for scripting commands")
	}

	err := tui.Run(tui.Options{
		Backend:           client,
		Store:             cfg,
		HealthInterval:    cfg.Polling.Health,
		CensusInterval:    cfg.Polling.Census,
		CountdownInterval: cfg.Polling.Countdown,
	})
	if err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// Status command flags
var (
	statusPhone string
	statusKey   string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check registration status by phone or API key",
	Long: `Look up a registration and show the registered phone, bot phone, total
amount caught, expiry and bot session details.

Exactly one of --phone or --key must be given.`,
	Example: `  # Check by registered phone
  tmcatcher status --phone 0812345678

  # Check by API key, JSON output for scripting
  tmcatcher status --key abc123 --format json`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusPhone, "phone", "", "Registered phone number (0[6-9]xxxxxxxx)")
	statusCmd.Flags().StringVar(&statusKey, "key", "", "API key used to register")
	statusCmd.MarkFlagsMutuallyExclusive("phone", "key")
	statusCmd.MarkFlagsOneRequired("phone", "key")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var res api.StatusResult
	if statusPhone != "" {
		if !validators.IsValidThaiPhone(statusPhone) {
			return fmt.Errorf("invalid phone %q: expected 0[6-9] followed by 8 digits", statusPhone)
		}
		printer.PrintHeader("REGISTRATION STATUS", "tmcatcher status", []api.Field{{Label: "Phone", Value: statusPhone}})
		res = client.CheckStatusByPhone(ctx, statusPhone)
	} else {
		printer.PrintHeader("REGISTRATION STATUS", "tmcatcher status", []api.Field{{Label: "API Key", Value: mask(statusKey)}})
		res = client.CheckStatusByAPIKey(ctx, statusKey)
	}

	var details []api.Field
	if res.Success {
		details = api.StatusFields(res, time.Local)
		if at, ok := res.BotSessionStatus.ExpiresAt(time.Local); ok {
			cd := countdown.New(at, time.Now())
			details = append(details, api.Field{Label: "เวลาที่เหลือของเซสชัน", Value: cd.String()})
		}
	}
	return report(printer.PrintResult("Registration Status", res.Response, details, res), res.Response)
}

var botsCmd = &cobra.Command{
	Use:   "bots",
	Short: "Show the number of online catcher bots",
	Example: `  tmcatcher bots
  tmcatcher bots --census-path /total-bots`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printer.PrintHeader("BOT CENSUS", "tmcatcher bots", []api.Field{{Label: "Backend", Value: cfg.API.BaseURL}})
		res := client.CheckTotalBots(cmd.Context())
		return report(printer.PrintResult("Online Bots", res.Response, api.CensusFields(res, time.Local), res), res.Response)
	},
}

type healthOutput struct {
	Healthy bool   `json:"healthy"`
	BaseURL string `json:"baseUrl"`
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the backend is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		healthy := client.CheckAPIHealth(cmd.Context())

		resp := api.Response{Success: healthy}
		state := api.StateOnline
		if !healthy {
			resp.Message = api.MsgCannotConnect
			state = api.StateOffline
		}
		details := []api.Field{
			{Label: "Backend", Value: cfg.API.BaseURL},
			{Label: "สถานะ", Value: state},
		}
		out := healthOutput{Healthy: healthy, BaseURL: cfg.API.BaseURL}
		return report(printer.PrintResult("API Health", resp, details, out), resp)
	},
}

var generateCount int

var generateKeyCmd = &cobra.Command{
	Use:   "generate-key",
	Short: "Generate new API keys",
	Example: `  tmcatcher generate-key
  tmcatcher generate-key --count 5 --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printer.PrintHeader("GENERATE API KEY", "tmcatcher generate-key", []api.Field{{Label: "Count", Value: fmt.Sprint(generateCount)}})
		res := client.GenerateAPIKey(cmd.Context(), generateCount)

		details := make([]api.Field, 0, len(res.Keys))
		for i, k := range res.Keys {
			details = append(details, api.Field{Label: fmt.Sprintf("Key %d", i+1), Value: k})
		}
		return report(printer.PrintResult("API Keys", res.Response, details, res), res.Response)
	},
}

func init() {
	generateKeyCmd.Flags().IntVar(&generateCount, "count", 1, "Number of keys to generate")
}

var submitCmd = &cobra.Command{
	Use:   "submit <phone> <apiKey>",
	Short: "Register a phone number with an API key",
	Long: `Register a phone number to receive caught red packets.

On success the phone is remembered in the config file so 'api-key' setup in
the TUI can reuse it.`,
	Example: `  tmcatcher submit 0812345678 abc123`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		phone, key := args[0], args[1]
		if !validators.IsValidThaiPhone(phone) {
			return fmt.Errorf("invalid phone %q: expected 0[6-9] followed by 8 digits", phone)
		}

		printer.PrintHeader("REGISTER PHONE", "tmcatcher submit", []api.Field{
			{Label: "Phone", Value: phone},
			{Label: "API Key", Value: mask(key)},
		})
		resp := client.SubmitPhone(cmd.Context(), phone, key)
		if resp.Success {
			if err := cfg.SaveRegistrantPhone(phone); err != nil {
				logging.Warn("Failed to save registrant phone", zap.Error(err))
			}
		}
		return report(printer.PrintResult("Register Phone", resp, []api.Field{{Label: "Phone", Value: phone}}, resp), resp)
	},
}

// Bot login flags
var botKey string

var botLoginCmd = &cobra.Command{
	Use:   "bot-login <phone>",
	Short: "Send a bot login OTP to a phone",
	Long: `Start a bot login. An OTP is sent by SMS to the bot phone; finish with
'tmcatcher verify-otp'. Local numbers are converted to +66 form.`,
	Example: `  tmcatcher bot-login 0812345678 --key abc123`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		phone := args[0]
		if !validators.AcceptsBotPhone(phone) {
			return fmt.Errorf("invalid bot phone %q: expected 0[6-9]xxxxxxxx or +66xxxxxxxxx", phone)
		}
		phone = validators.NormalizeBotPhone(phone)

		printer.PrintHeader("BOT LOGIN", "tmcatcher bot-login", []api.Field{{Label: "Bot Phone", Value: phone}})
		resp := client.InitiateBotLogin(cmd.Context(), phone, botKey)
		return report(printer.PrintResult("Bot Login", resp, []api.Field{{Label: "Bot Phone", Value: phone}}, resp), resp)
	},
}

var verifyOTPCmd = &cobra.Command{
	Use:     "verify-otp <phone> <code>",
	Short:   "Verify the bot login OTP",
	Example: `  tmcatcher verify-otp 0812345678 12345 --key abc123`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		phone, code := args[0], args[1]
		if !validators.AcceptsBotPhone(phone) {
			return fmt.Errorf("invalid bot phone %q: expected 0[6-9]xxxxxxxx or +66xxxxxxxxx", phone)
		}
		if !validators.IsValidOTP(code) {
			return fmt.Errorf("invalid OTP %q: expected %d digits", code, validators.OTPLength)
		}
		phone = validators.NormalizeBotPhone(phone)

		printer.PrintHeader("VERIFY OTP", "tmcatcher verify-otp", []api.Field{{Label: "Bot Phone", Value: phone}})
		resp := client.VerifyBotOTP(cmd.Context(), phone, code, botKey)
		return report(printer.PrintResult("Verify OTP", resp, nil, resp), resp)
	},
}

func init() {
	for _, c := range []*cobra.Command{botLoginCmd, verifyOTPCmd} {
		c.Flags().StringVar(&botKey, "key", "", "API key the bot is bound to")
		_ = c.MarkFlagRequired("key")
	}
}
