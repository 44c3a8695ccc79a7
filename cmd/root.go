package cmd

import (
	"fmt"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile  string
	logger   *zap.Logger
	profiler interface{ Stop() }
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gopoisson",
	Short: "Finite element solver for the 2D Poisson equation",
	Long: `gopoisson solves -Laplacian(u) = f on structured quadrilateral grids with bilinear and
serendipity elements, and compares solutions on refined meshes along a probe line.

Flags can also be set in $HOME/.gopoisson.yaml or in the environment with the GOPOISSON_ prefix,
e.g. GOPOISSON_VERBOSE=true.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		config := zap.NewProductionConfig()
		if viper.GetBool("verbose") {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		if logger, err = config.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if f := viper.ConfigFileUsed(); len(f) != 0 {
			logger.Debug("using config file", zap.String("file", f))
		}
		return startProfile(viper.GetString("profile"))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
			profiler = nil
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the command line, errors are printed by cobra
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gopoisson.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log diagnostics of assembly and solve")
	rootCmd.PersistentFlags().String("profile", "", "write a cpu or mem profile to the working directory")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".gopoisson")
	}
	viper.SetEnvPrefix("GOPOISSON")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	// A missing config file is fine, flags and environment still apply
	_ = viper.ReadInConfig()
}

func startProfile(mode string) (err error) {
	var opt func(*profile.Profile)
	switch strings.ToLower(mode) {
	case "":
		return
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfile
	default:
		return fmt.Errorf("unknown profile mode \"%s\", use cpu or mem", mode)
	}
	profiler = profile.Start(opt, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
	return
}
