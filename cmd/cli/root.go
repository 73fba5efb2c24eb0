package cli

import (
	"github.com/spf13/cobra"

	"github.com/convobudget/convobudget/pkg/budget"
	"github.com/convobudget/convobudget/pkg/config"
	"github.com/convobudget/convobudget/pkg/logging"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	charLimit   int
	safetyRatio float64
	overhead    int
	noTruncate  bool
	formatName  string

	// Config manager - initialized once and reused
	cfgManager config.Manager
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "convobudget",
	Short: "Keep chat transcripts within a provider's input-size limit",
	Long: `convobudget trims chat transcripts so they fit a text-generation
provider's character limit, keeping pinned system instructions and the
most recent turns. Transcripts are JSON or YAML lists of role/content
pairs, read from a file or stdin.`,
	Version: "dev",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Configure logger based on flags
		var logger logging.Logger
		if quiet {
			logger = logging.NewQuietLogger()
		} else if verbose {
			logger = logging.NewVerboseLogger()
		} else {
			logger = logging.NewDefaultLogger()
		}
		logging.SetGlobalLogger(logger)

		if cfgManager == nil {
			cfgManager = config.NewConfigManager()
		}
	},
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug level)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet output (errors only)")
	rootCmd.PersistentFlags().IntVar(&charLimit, "char-limit", 0, "provider character limit (overrides config)")
	rootCmd.PersistentFlags().Float64Var(&safetyRatio, "safety-ratio", 0, "headroom ratio in (0,1] (overrides config)")
	rootCmd.PersistentFlags().IntVar(&overhead, "overhead", 0, "reserved characters for content added later (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noTruncate, "no-truncate-last", false, "never partially include the boundary message")
	rootCmd.PersistentFlags().StringVar(&formatName, "format", "auto", "transcript format: json, yaml or auto")

	rootCmd.AddCommand(newTrimCommand())
	rootCmd.AddCommand(newRollupCommand())
	rootCmd.AddCommand(newDocCommand())
	rootCmd.AddCommand(newSizeCommand())
}

// activeConfig returns the shared config manager, building it on demand
// so subcommands work when invoked outside the root command (tests).
func activeConfig() config.Manager {
	if cfgManager == nil {
		cfgManager = config.NewConfigManager()
	}
	return cfgManager
}

// resolveBudgetConfig layers explicit flags over the configured policy.
func resolveBudgetConfig() budget.Config {
	cfg := activeConfig().GetBudgetConfig()

	flags := rootCmd.PersistentFlags()
	if flags.Changed("char-limit") {
		cfg.CharLimit = charLimit
	}
	if flags.Changed("safety-ratio") {
		cfg.SafetyRatio = safetyRatio
	}
	if flags.Changed("overhead") {
		cfg.ExtraOverhead = overhead
	}
	if noTruncate {
		cfg.TruncateLastIfNeeded = false
	}
	return cfg
}
