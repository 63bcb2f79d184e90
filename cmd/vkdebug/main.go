package main

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "vkdebug",
	Short:        "Check Vulkan validation layers and watch their messages",
	Long:         "vkdebug negotiates the Vulkan validation layers, creates an instance with a debug messenger and logs what the layers report.",
	SilenceUsage: true,
}

func init() {
	// glfw has to run on the main thread
	runtime.LockOSThread()
}

func main() {
	rootCmd.AddCommand(layersCmd)
	rootCmd.AddCommand(extensionsCmd)
	rootCmd.AddCommand(probeCmd)

	rootCmd.PersistentFlags().String("config", "", "configuration file (yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (error|warn|info|debug|trace), overrides "+vkdebugLogEnv)
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
