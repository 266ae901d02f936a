package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/pterm/pterm"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pathshare/pathshare/internal/config"
	"github.com/pathshare/pathshare/internal/logger"
	"github.com/pathshare/pathshare/internal/nav"
	"github.com/pathshare/pathshare/internal/profile"
	"github.com/pathshare/pathshare/internal/session"
	"github.com/pathshare/pathshare/internal/support"
	"github.com/pathshare/pathshare/internal/theme"
	"github.com/pathshare/pathshare/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	Execute()
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pathshare",
	Short: "PathShare terminal client",
	Long: `PathShare is a carpooling client: find or offer shared rides, track a
live trip, earn points, and manage your account, all from the terminal.`,
	Run: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			pterm.Info.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	config.InitFlags()
	rootCmd.PersistentFlags().AddFlagSet(pflag.CommandLine)
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")
}

// runTUI wires the stores and controller and runs the app.
func runTUI(cmd *cobra.Command, args []string) {
	defer func() {
		if r := recover(); r != nil {
			pterm.Error.Printf("\nCaught panic: %v\n", r)
			pterm.Error.Printf("%s\n", debug.Stack())
			os.Exit(2)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitLogger(&cfg.Logging); err != nil {
		pterm.Error.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	store := session.NewSupabaseStore(&cfg.Session)
	profiles := profile.NewCache(store)
	themes := theme.NewStore(&cfg.Theme)
	ctrl := nav.NewController(store, profiles, themes, cfg.Splash.Delay)
	chat := support.NewChat(&cfg.Support)

	p := tea.NewProgram(tui.NewAppModel(ctrl, chat), tea.WithAltScreen())

	// Controller mutations can come from the splash timer or auth events;
	// bridge every change into a redraw message.
	ctrl.SetOnChange(func() {
		p.Send(tui.StateChangedMsg{})
	})

	ctrl.Start(context.Background())
	defer ctrl.Stop()

	if _, err := p.Run(); err != nil {
		pterm.Error.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
