// Package main provides the CLI entrypoint for chemquiz.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Chokichi/Chemistry-Quiz-App/internal/catalog"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/config"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/generator"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/model"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/pool"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/quiz"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/stats"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/store"
	"github.com/Chokichi/Chemistry-Quiz-App/internal/tui"
)

const (
	defaultModes    = "symbol-to-name"
	defaultStatsTop = 10
)

type quizFlags struct {
	modes      string
	chem20     bool
	mainGroup  bool
	transition bool
	rareEarths bool
	maxRow     int
	seed       int64
	history    bool
	catalog    string
}

var (
	quizOpts quizFlags

	statsSince string
	statsLast  int
	statsTop   int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "chemquiz",
		Short:         "Periodic table flashcard quiz",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runQuizCmd,
	}
	addQuizFlags(rootCmd, &quizOpts)

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newElementsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func addQuizFlags(cmd *cobra.Command, f *quizFlags) {
	cmd.Flags().StringVar(&f.modes, "modes", defaultModes, "comma-separated question types (symbol-to-name, name-to-symbol, symbol-to-charge, family)")
	cmd.Flags().BoolVar(&f.chem20, "chem20", true, "include the common chemistry set")
	cmd.Flags().BoolVar(&f.mainGroup, "main-group", false, "include main group elements")
	cmd.Flags().BoolVar(&f.transition, "transition", false, "include transition metals")
	cmd.Flags().BoolVar(&f.rareEarths, "rare-earths", false, "include lanthanides and actinides")
	cmd.Flags().IntVar(&f.maxRow, "max-row", model.MaxPeriod, "highest period to include (1-7)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().BoolVar(&f.history, "history", false, "record finished runs for chemquiz stats")
	cmd.Flags().StringVar(&f.catalog, "catalog", "", "path to an element catalog YAML file")
}

// resolveConfig merges file values under explicitly set flags.
func resolveConfig(cmd *cobra.Command, f quizFlags, fileCfg config.FileConfig) (model.Config, error) {
	q := fileCfg.Quiz
	if q.Modes != nil && !cmd.Flags().Changed("modes") {
		f.modes = strings.Join(q.Modes, ",")
	}
	applyBoolConfig(cmd, "chem20", &f.chem20, q.Chem20)
	applyBoolConfig(cmd, "main-group", &f.mainGroup, q.MainGroup)
	applyBoolConfig(cmd, "transition", &f.transition, q.Transition)
	applyBoolConfig(cmd, "rare-earths", &f.rareEarths, q.RareEarths)
	applyIntConfig(cmd, "max-row", &f.maxRow, q.MaxRow)
	applyInt64Config(cmd, "seed", &f.seed, q.Seed)
	applyBoolConfig(cmd, "history", &f.history, q.History)
	applyStringConfig(cmd, "catalog", &f.catalog, q.Catalog)

	modes, err := parseModes(f.modes)
	if err != nil {
		return model.Config{}, err
	}
	cfg := model.Config{
		Modes: modes,
		Filter: model.FilterConfig{
			Chem20:            f.chem20,
			MainGroup:         f.mainGroup,
			Transition:        f.transition,
			IncludeRareEarths: f.rareEarths,
			MaxRow:            f.maxRow,
		},
		Seed:        f.seed,
		History:     f.history,
		CatalogPath: f.catalog,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func loadQuizConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return resolveConfig(cmd, quizOpts, fileCfg)
}

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadQuizConfig(cmd)
	if err != nil {
		return err
	}
	elements, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(pool.Build(elements, cfg.Filter)) == 0 {
		return fmt.Errorf("no elements match filter %s", cfg.Filter)
	}

	var st *store.Store
	if cfg.History {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	gen := generator.New()
	if cfg.Seed != 0 {
		gen = generator.NewWithSeed(cfg.Seed)
	}
	session := quiz.NewSession(elements, cfg.Filter, cfg.Modes, gen)
	m := tui.NewModel(session, st)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := m.SaveErr(); err != nil {
		logErrln(err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newElementsCmd() *cobra.Command {
	var opts quizFlags
	cmd := &cobra.Command{
		Use:   "elements",
		Short: "List the elements selected by the filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg, err := resolveConfig(cmd, opts, fileCfg)
			if err != nil {
				return err
			}
			elements, err := catalog.Load(cfg.CatalogPath)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Filter: %s\n\n", cfg.Filter); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return stats.RenderPool(cmd.OutOrStdout(), pool.Build(elements, cfg.Filter))
		},
	}
	addQuizFlags(cmd, &opts)
	return cmd
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show quiz history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N runs")
	cmd.Flags().IntVar(&statsTop, "top", defaultStatsTop, "number of weakest elements to list")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := parseStatsConfig(statsSince, statsLast, statsTop)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	names, err := elementNames(fileCfg)
	if err != nil {
		return err
	}
	if err := report.Render(cmd.OutOrStdout(), names); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(report.Runs) == 0 {
		logErrln("Runs are recorded with: chemquiz --history")
	}
	return nil
}

// elementNames maps symbols to names from the configured catalog.
func elementNames(fileCfg config.FileConfig) (map[string]string, error) {
	path := ""
	if fileCfg.Quiz.Catalog != nil {
		path = *fileCfg.Quiz.Catalog
	}
	elements, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	names := make(map[string]string, len(elements))
	for symbol, el := range catalog.BySymbol(elements) {
		names[symbol] = el.Name
	}
	return names, nil
}

func parseStatsConfig(since string, last, top int) (model.StatsConfig, error) {
	if last < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if top < 0 {
		return model.StatsConfig{}, fmt.Errorf("--top must be >= 0")
	}
	cfg := model.StatsConfig{Last: last, Top: top}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func parseModes(value string) (model.ModeSet, error) {
	modes := model.ModeSet{}
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, err := model.ParseQuestionType(part)
		if err != nil {
			return nil, fmt.Errorf("invalid --modes value: %w", err)
		}
		modes[t] = true
	}
	if len(modes) == 0 {
		return nil, fmt.Errorf("--modes must name at least one question type")
	}
	return modes, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# chemquiz configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# modes = [%q]   # symbol-to-name, name-to-symbol, symbol-to-charge, family
# chem20 = true              # Common chemistry set
# main-group = false         # Main group elements
# transition = false         # Transition metals
# rare-earths = false        # Lanthanides and actinides
# max-row = %d                # Highest period (1-%d)
# seed = 0                   # Random seed (0 = time based)
# history = false            # Record finished runs for chemquiz stats
# catalog = ""               # Element catalog YAML (empty = built-in)
`,
		defaultModes,
		model.MaxPeriod,
		model.MaxPeriod,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Filter.MaxRow < 1 || cfg.Filter.MaxRow > model.MaxPeriod {
		return fmt.Errorf("--max-row must be between 1 and %d", model.MaxPeriod)
	}
	if len(cfg.Modes.Enabled()) == 0 {
		return fmt.Errorf("--modes must enable at least one question type")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
