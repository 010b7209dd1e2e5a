package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/breppy/breppy/internal/api"
	"github.com/breppy/breppy/internal/config"
	"github.com/breppy/breppy/internal/log"
)

// app holds the process wide state shared by all commands. The config is
// loaded once, on the first command that needs it.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	client *api.Client
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "breppy",
		Short:         "Upload torrents and manage collages on Luminance trackers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if name := a.v.GetString("log-level"); name != "" {
				level, err := log.ParseLevel(name)
				if err != nil {
					return err
				}
				log.SetLevel(level)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to the config file (default: per-user config dir)")
	flags.String("log-level", "", "Log level: debug, info, warn, error, fatal, none")
	flags.Duration("timeout", 60*time.Second, "HTTP request timeout, 0 for none")

	// Flags can also be set as BREPPY_CONFIG, BREPPY_LOG_LEVEL, BREPPY_TIMEOUT
	a.v.SetEnvPrefix("breppy")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(flags); err != nil {
		log.Fatal("main").Err(err).Msg("Failed to bind flags")
	}

	root.AddCommand(
		a.newUploadCmd(),
		a.newCollageCmd(),
		a.newLegacyCollageCmd(),
		a.newConfigCmd(),
	)
	return root
}

// bootstrap loads or creates the config, warns about unset values and
// builds the tracker client.
func (a *app) bootstrap() error {
	if a.cfg != nil {
		return nil
	}

	cfg, err := config.LoadOrCreate(a.v.GetString("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	config.WarnEmptyKeys(cfg)

	a.cfg = cfg
	a.client = api.NewClient(cfg, &http.Client{Timeout: a.v.GetDuration("timeout")})
	return nil
}
