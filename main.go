package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ByteMirror/growlens/app"
	"github.com/ByteMirror/growlens/assessment"
	"github.com/ByteMirror/growlens/config"
	"github.com/ByteMirror/growlens/log"
	"github.com/ByteMirror/growlens/recraft"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version     = "0.1.0"
	contextFlag string
	promptFlag  string
	guestFlag   bool

	imageFlag         string
	assessContextFlag string
	assessPromptFlag  string
	prefFlags         []string

	rootCmd = &cobra.Command{
		Use:   "growlens",
		Short: "GrowLens - assess your growing space from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false)
			defer log.Close()

			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("error: growlens needs an interactive terminal, use `growlens assess` for scripted runs")
			}

			var ctxTag assessment.ContextTag
			if contextFlag != "" {
				tag, err := assessment.ParseContextTag(contextFlag)
				if err != nil {
					return err
				}
				ctxTag = tag
			}

			tokens, err := tokenStore()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			return app.Run(ctx, app.Options{
				Config:   config.LoadConfig(),
				Tokens:   tokens,
				SkipAuth: guestFlag,
				Context:  ctxTag,
				Prompt:   promptFlag,
			})
		},
	}

	assessCmd = &cobra.Command{
		Use:   "assess",
		Short: "Submit a photo without the interactive UI and print the rendered image URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(true)
			defer log.Close()

			ctxTag, err := assessment.ParseContextTag(assessContextFlag)
			if err != nil {
				return err
			}

			cfg := config.LoadConfig()
			prompt := assessPromptFlag
			if prompt == "" {
				prompt = cfg.DefaultPrompt
			}
			form := assessment.NewForm(ctxTag, prompt).WithImage(imageFlag)
			for _, p := range prefFlags {
				if !assessment.IsPreference(p) {
					return fmt.Errorf("unknown preference %q, want one of: %s", p, strings.Join(assessment.Preferences, ", "))
				}
				if !form.Selected(p) {
					form = form.TogglePreference(p)
				}
			}
			if len(prefFlags) > 0 && ctxTag != assessment.ContextUrban {
				fmt.Fprintln(os.Stderr, "note: preferences only apply to urban spaces and are ignored")
			}

			tokens, err := tokenStore()
			if err != nil {
				return err
			}
			token := config.ResolveToken(tokens, recraft.DefaultToken)
			client := recraft.NewClient(cfg.ClientConfig(token))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			url, err := assessment.Submit(ctx, client, form)
			if err != nil {
				log.ErrorLog.Printf("assess failed: %v", err)
				return err
			}

			fmt.Println(url)
			fmt.Println()
			fmt.Println("Based on your space analysis, we recommend:")
			for _, r := range assessment.Recommendations() {
				fmt.Printf("  • %s\n", r)
			}
			return nil
		},
	}

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Manage the stored Recraft API token",
	}

	tokenSetCmd = &cobra.Command{
		Use:   "set [token]",
		Short: "Store the API token. Reads it from the terminal when not given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(true)
			defer log.Close()

			var token string
			if len(args) == 1 {
				token = args[0]
			} else {
				t, err := readSecret("API token: ")
				if err != nil {
					return err
				}
				token = t
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return errors.New("token must not be empty, use `growlens token clear` to remove it")
			}

			tokens, err := tokenStore()
			if err != nil {
				return err
			}
			if err := tokens.SetToken(token); err != nil {
				return err
			}
			fmt.Printf("Token %s saved\n", log.RedactToken(token))
			return nil
		},
	}

	tokenShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show which API token will be used, redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(true)
			defer log.Close()

			tokens, err := tokenStore()
			if err != nil {
				return err
			}
			stored, err := tokens.GetToken()
			if err != nil {
				return err
			}
			switch {
			case stored != "":
				fmt.Printf("stored:   %s\n", log.RedactToken(stored))
			case recraft.DefaultToken != "":
				fmt.Printf("built-in: %s\n", log.RedactToken(recraft.DefaultToken))
			default:
				fmt.Println("no token available")
			}
			return nil
		},
	}

	tokenClearCmd = &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(true)
			defer log.Close()

			tokens, err := tokenStore()
			if err != nil {
				return err
			}
			if err := tokens.ClearToken(); err != nil {
				return err
			}
			fmt.Println("Token removed")
			return nil
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Remove all stored state, including the API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(true)
			defer log.Close()

			kv, err := config.DefaultKVStore()
			if err != nil {
				return fmt.Errorf("failed to locate state: %w", err)
			}
			if err := kv.Reset(); err != nil {
				return fmt.Errorf("failed to reset state: %w", err)
			}
			fmt.Println("State has been reset successfully")
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(true)
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Printf("State: %s\n", filepath.Join(configDir, config.StateFileName))
			fmt.Printf("Log: %s (debug: %t)\n", log.FileName(), log.IsDebugEnabled())
			fmt.Printf("Endpoint: %s\n", log.SanitizeURL(recraft.NewClient(cfg.ClientConfig("")).Endpoint()))

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of growlens",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("growlens version %s\n", version)
		},
	}
)

func tokenStore() (*config.KVTokenStore, error) {
	kv, err := config.DefaultKVStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}
	return config.NewTokenStore(kv), nil
}

// readSecret prompts on stderr and reads a line without echo when stdin is a
// terminal. Piped input is read as is.
func readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		return string(b), nil
	}
	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return line, nil
}

func init() {
	rootCmd.Flags().StringVarP(&contextFlag, "context", "c", "",
		"Open an assessment right away for this space: field or urban")
	rootCmd.Flags().StringVarP(&promptFlag, "prompt", "p", "", "Override the assessment prompt")
	rootCmd.Flags().BoolVarP(&guestFlag, "guest", "g", false, "Skip the welcome and login screens")

	assessCmd.Flags().StringVarP(&imageFlag, "image", "i", "", "Photo of the space to assess")
	assessCmd.Flags().StringVarP(&assessContextFlag, "context", "c", string(assessment.ContextField), "Kind of space: field or urban")
	assessCmd.Flags().StringVarP(&assessPromptFlag, "prompt", "p", "", "Override the assessment prompt")
	assessCmd.Flags().StringArrayVar(&prefFlags, "pref", nil,
		"Growing preference for urban spaces, repeatable: "+strings.Join(assessment.Preferences, ", "))
	_ = assessCmd.MarkFlagRequired("image")

	tokenCmd.AddCommand(tokenSetCmd, tokenShowCmd, tokenClearCmd)
	rootCmd.AddCommand(assessCmd, tokenCmd, resetCmd, debugCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
