package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spigell/resume-screener/internal/extraction"
	"github.com/spigell/resume-screener/internal/jobs"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/pipeline"
	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/textextract"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptDetails     = "Show candidate details"
	PromptSummary     = "Show ranked table"
	PromptExportCSV   = "Export results to CSV"
	PromptDumpToFile  = "Dump results to file"
	PromptExit        = "Exit"
	PromptBack        = "back"
	defaultCSVOutName = "resume_screening_results.csv"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Next action",
	Items: []string{PromptDetails, PromptSummary, PromptExportCSV, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run [resume files or directories...]",
	Short: "Screen resumes against the configured job and print the ranked shortlist",
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("title", "", "job title")
	runCmd.Flags().Float64("min-years", 0, "minimum years of experience")
	runCmd.Flags().String("skills", "", "required skills, comma separated")
	runCmd.Flags().StringP("csv", "o", "", "write ranked results to this CSV file")
	runCmd.Flags().String("json-out", "", "write ranked results to this JSON file")
	runCmd.Flags().IntP("concurrency", "c", 1, "number of resumes processed in parallel")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not open the interactive menu after ranking")

	viper.BindPFlag("output.csv", runCmd.Flags().Lookup("csv"))
	viper.BindPFlag("output.json", runCmd.Flags().Lookup("json-out"))
	viper.BindPFlag("concurrency", runCmd.Flags().Lookup("concurrency"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-screener", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	job, err := jobs.Load(jobs.Section(viper.GetViper()), jobOverrides(cmd))
	if err != nil {
		logger.Fatal("building the job requirement", zap.Error(err))
	}

	logger.Info("job requirement loaded", jobFields(job)...)

	paths := args
	if len(paths) == 0 {
		paths = config.Inputs
	}
	if len(paths) == 0 {
		logger.Fatal("no resumes given", zap.String("hint", "pass files or directories as arguments or set 'inputs' in the configuration file"))
	}

	docs, err := textextract.Load(ctx, textextract.NewDocconvExtractor(logger), paths, logger)
	if err != nil {
		logger.Fatal("loading resumes", zap.Error(err))
	}

	if len(docs) == 0 {
		logger.Info("exiting", zap.String("reason", "no resumes found"))
		return
	}

	screener := pipeline.New(job, prepareExtractor(config.Extraction, logger), logger, pipeline.Options{
		Concurrency: config.Concurrency,
	})

	batch, err := screener.Screen(ctx, docs)
	if err != nil {
		logger.Fatal("screening failed", zap.Error(err))
	}

	results := newResults(batch)

	if err := report.WriteTable(os.Stdout, results.summary, results.rows); err != nil {
		logger.Fatal("printing results", zap.Error(err))
	}

	if err := writeOutputs(config.Output, results, logger); err != nil {
		logger.Fatal("writing results", zap.Error(err))
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, config, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

type results struct {
	job     string
	summary report.Summary
	rows    []report.Row
}

func newResults(batch *pipeline.Batch) *results {
	return &results{
		job:     batch.Job.Title(),
		summary: report.Summarize(batch.Candidates),
		rows:    report.Rows(batch.Candidates),
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, res *results) error {
	switch action {
	case PromptDetails:
		return showDetails(os.Stdout, res)
	case PromptSummary:
		return report.WriteTable(os.Stdout, res.summary, res.rows)
	case PromptExportCSV:
		path := config.Output.CSV
		if path == "" {
			var err error
			path, err = askPath(defaultCSVOutName)
			if err != nil {
				return err
			}
		}
		if err := report.WriteCSVFile(path, res.rows); err != nil {
			return err
		}
		logger.Info("results exported", zap.String("filename", path))
		return nil
	case PromptDumpToFile:
		filename, err := report.DumpToTmpFile(res.job, res.summary, res.rows)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showDetails(w io.Writer, res *results) error {
	for {
		items := make([]string, 0, len(res.rows)+1)
		for _, row := range res.rows {
			items = append(items, report.Label(row))
		}

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		idx, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}

		if selected == PromptBack {
			return nil
		}

		fmt.Fprintln(w, report.Details(res.rows[idx]))
	}
}

func askPath(def string) (string, error) {
	pathPrompt := promptui.Prompt{
		Label:   "CSV file",
		Default: def,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("file name is required")
			}
			return nil
		},
	}

	path, err := pathPrompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(path), nil
}

func writeOutputs(cfg *OutputConfig, res *results, logger *zap.Logger) error {
	if cfg.CSV != "" {
		if err := report.WriteCSVFile(cfg.CSV, res.rows); err != nil {
			return err
		}
		logger.Info("results exported", zap.String("filename", cfg.CSV), zap.String("format", "csv"))
	}

	if cfg.JSON != "" {
		if err := report.WriteJSONFile(cfg.JSON, res.job, res.summary, res.rows); err != nil {
			return err
		}
		logger.Info("results exported", zap.String("filename", cfg.JSON), zap.String("format", "json"))
	}

	return nil
}

func jobOverrides(cmd *cobra.Command) jobs.Overrides {
	var overrides jobs.Overrides
	if cmd == nil {
		return overrides
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		overrides.Title = &title
	}
	if flags.Changed("min-years") {
		years, _ := flags.GetFloat64("min-years")
		overrides.MinYearsExperience = &years
	}
	if flags.Changed("skills") {
		skills, _ := flags.GetString("skills")
		overrides.RequiredSkills = &skills
	}
	return overrides
}

func prepareExtractor(cfg *ExtractionConfig, logger *zap.Logger) *extraction.Extractor {
	fields := extraction.Default(extraction.Options{
		YearRangeFallback: cfg.YearRangeFallback,
	})

	for _, name := range cfg.DisabledFields {
		extraction.DisableByName(fields, strings.TrimSpace(name), "disabled in configuration")
	}

	extractor := extraction.New(fields, logger)
	for _, status := range extraction.Describe(extractor.Fields()) {
		logger.Debug("extraction field",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
		)
	}

	return extractor
}

func jobFields(job *screening.JobRequirement) []zap.Field {
	return logger.JobFields(job)
}
