package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/transferability/internal/ai"
	"github.com/spigell/transferability/internal/ai/anthropic"
	"github.com/spigell/transferability/internal/ai/gemini"
	"github.com/spigell/transferability/internal/headhunter"
	"github.com/spigell/transferability/internal/logger"
	"github.com/spigell/transferability/internal/metrics"
	"github.com/spigell/transferability/internal/posting"
	"github.com/spigell/transferability/internal/report"
	"github.com/spigell/transferability/internal/secrets"
)

const (
	PromptSummary    = "Print summary"
	PromptJSON       = "Print JSON"
	PromptDumpToFile = "Dump report to file"
	PromptExit       = "Exit"

	providerGemini    = "gemini"
	providerAnthropic = "anthropic"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSummary, PromptJSON, PromptDumpToFile, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Label a job posting with an AI model and compute its transferability report",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("file", "f", "", "posting file (.pdf is sent as a document, .html is reduced to text)")
	analyzeCmd.Flags().StringP("url", "u", "", "posting web page")
	analyzeCmd.Flags().StringP("text", "t", "", "posting text")
	analyzeCmd.Flags().StringP("vacancy", "v", "", "hh.ru vacancy id")
	analyzeCmd.Flags().StringP("search", "s", "", "search hh.ru and pick a vacancy interactively")
	analyzeCmd.Flags().String("provider", "", "ai provider: gemini or anthropic (overrides ai.provider)")
	analyzeCmd.Flags().BoolP("auto-approve", "y", false, "do not ask what to do with the report, print it and exit")
	analyzeCmd.Flags().StringP("output", "o", "", "output format for non-interactive mode: text, json or yaml")
}

// analyze is the main command for the cli.
func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	lg.Info("starting the analysis", zap.String("version", version))

	overrideFromFlags(cmd, config)

	format, err := report.ParseFormat(config.Output.Format)
	if err != nil {
		lg.Fatal("parsing output format", zap.Error(err))
	}

	hh, err := newHeadhunter(ctx, config, lg)
	if err != nil {
		lg.Fatal("creating headhunter client", zap.Error(err))
	}

	ref := posting.Ref{
		File:      flagString(cmd, "file"),
		URL:       flagString(cmd, "url"),
		Text:      flagString(cmd, "text"),
		VacancyID: flagString(cmd, "vacancy"),
	}

	if text := flagString(cmd, "search"); text != "" {
		id, err := pickVacancy(hh, config, text, lg)
		if err != nil {
			lg.Fatal("picking a vacancy", zap.Error(err))
		}
		ref.VacancyID = id
	}

	analyzer, err := newAnalyzer(ctx, config.AI, lg)
	if err != nil {
		lg.Fatal("creating an analyzer", zap.Error(err))
	}

	loaded, err := posting.NewLoader(hh, lg).Load(ctx, ref)
	if err != nil {
		lg.Fatal("loading the posting", zap.Error(err))
	}

	lg.Info("analyzing the posting", zap.String("source", loaded.Source), zap.String("title", loaded.Title))

	raw, err := analyzer.Analyze(ctx, loaded)
	if err != nil {
		lg.Fatal("analyzing the posting", zap.Error(err))
	}

	result, err := metrics.New().Compute(raw)
	if err != nil {
		lg.Fatal("computing metrics", zap.Error(err))
	}

	lg.Info("report computed", logger.ReportFields(result)...)

	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := report.Write(os.Stdout, result, format); err != nil {
			lg.Fatal("writing the report", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			lg.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, lg, config, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			lg.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, result *metrics.FullReport) error {
	switch action {
	case PromptSummary:
		return report.Write(os.Stdout, result, report.FormatText)
	case PromptJSON:
		return report.Write(os.Stdout, result, report.FormatJSON)
	case PromptDumpToFile:
		format, err := report.ParseFormat(config.Output.Format)
		if err != nil {
			return err
		}
		// A summary table is not worth keeping on disk.
		if format == report.FormatText {
			format = report.FormatJSON
		}
		filename, err := report.DumpToFile(config.Output.Dir, result, format)
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// pickVacancy searches hh.ru and lets the user choose one vacancy.
func pickVacancy(hh *headhunter.Client, config *Config, text string, logger *zap.Logger) (string, error) {
	params := &headhunter.SearchParams{}
	if config.Search != nil {
		*params = *config.Search
	}
	params.Text = text

	vacancies, err := hh.Search(params)
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}

	logger.Info("getting vacancies", zap.Int("count", vacancies.Len()))

	if vacancies.Len() == 0 {
		return "", fmt.Errorf("no vacancies found for %q", text)
	}

	items := make([]string, 0, vacancies.Len())
	for _, vacancy := range vacancies.Items {
		items = append(items, vacancy.Label())
	}

	vacancyPrompt := promptui.Select{
		Label: "Choose a vacancy and press ENTER",
		Items: items,
		Size:  15,
	}

	idx, _, err := vacancyPrompt.Run()
	if err != nil {
		return "", err
	}

	return vacancies.Items[idx].ID, nil
}

func newHeadhunter(ctx context.Context, config *Config, logger *zap.Logger) (*headhunter.Client, error) {
	token := ""
	if tokenFile := strings.TrimSpace(config.TokenFile); tokenFile != "" {
		var err error
		token, err = secrets.Load(secrets.Source{
			Name: "headhunter token",
			File: tokenFile,
		})
		if err != nil {
			return nil, err
		}
	}

	hh := headhunter.New(ctx, logger, token)

	if config.UserAgent != "" {
		hh.UserAgent = config.UserAgent
	}

	return hh, nil
}

func newAnalyzer(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Analyzer, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "", providerGemini:
		gcfg := cfg.Gemini
		if gcfg == nil {
			gcfg = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: gcfg.APIKeyFile,
			Env:  "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		genLogger := logger.WithCommonFields(log, providerGemini, gcfg.Model).With(
			zap.Int("ai_retry_attempts", gcfg.MaxRetries),
		)

		generator, err := gemini.NewGenerator(ctx, apiKey, gcfg.Model, gcfg.MaxRetries, gcfg.ThinkingBudget, genLogger)
		if err != nil {
			return nil, err
		}

		return gemini.NewAnalyzer(generator, gcfg.MaxLogLength, log), nil

	case providerAnthropic:
		acfg := cfg.Anthropic
		if acfg == nil {
			acfg = &AnthropicConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "anthropic api key",
			File: acfg.APIKeyFile,
			Env:  "ANTHROPIC_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.anthropic.api-key-file or ANTHROPIC_API_KEY_FILE)", err)
		}

		return anthropic.New(anthropic.Config{
			APIKey:       apiKey,
			Model:        acfg.Model,
			MaxTokens:    acfg.MaxTokens,
			MaxRetries:   acfg.MaxRetries,
			MaxLogLength: acfg.MaxLogLength,
		}, log)

	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

// overrideFromFlags applies flags that were set explicitly on top of the config file.
func overrideFromFlags(cmd *cobra.Command, config *Config) {
	if flag := cmd.Flag("output"); flag != nil && flag.Changed {
		config.Output.Format = flag.Value.String()
	}
	if flag := cmd.Flag("provider"); flag != nil && flag.Changed {
		config.AI.Provider = flag.Value.String()
	}
}

func flagString(cmd *cobra.Command, name string) string {
	flag := cmd.Flag(name)
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(flag.Value.String())
}
