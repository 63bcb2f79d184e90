package main

import (
	"fmt"
	"sort"

	"github.com/celer/vkdebug"
	"github.com/celer/vkdebug/vkplatform"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var layersCmd = &cobra.Command{
	Use:   "layers",
	Short: "List installed instance layers",
	Long:  "List the instance layers the Vulkan loader reports, marking the configured validation layers.",
	Args:  cobra.NoArgs,
	RunE:  runLayers,
}

var extensionsCmd = &cobra.Command{
	Use:   "extensions",
	Short: "List available instance extensions",
	Args:  cobra.NoArgs,
	RunE:  runExtensions,
}

func runLayers(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := setupColor(cmd); err != nil {
		return err
	}
	if err := vkplatform.Init(); err != nil {
		return err
	}

	layers, err := vkplatform.New().SupportedLayers()
	if err != nil {
		return err
	}
	printList(cmd, "Layers", layers, cfg.Validation.Layers)

	installed := vkdebug.NewCapabilitySet(layers)
	for _, want := range cfg.Validation.Layers {
		name, err := vkdebug.NewCapabilityName(want)
		if err != nil {
			return err
		}
		if !installed.Has(name) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.RedString("missing"), want)
		}
	}
	return nil
}

func runExtensions(cmd *cobra.Command, args []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	if err := vkplatform.Init(); err != nil {
		return err
	}

	platform := vkplatform.New()
	extensions, err := platform.SupportedExtensions()
	if err != nil {
		return err
	}
	printList(cmd, "Extensions", extensions, []string{platform.DiagnosticExtension()})
	return nil
}

func printList(cmd *cobra.Command, title string, data []string, highlight []string) {
	out := cmd.OutOrStdout()
	sorted := append([]string(nil), data...)
	sort.Strings(sorted)

	fmt.Fprintf(out, "%s\n", title)
	fmt.Fprintf(out, "-----------------------------\n")
	for _, d := range sorted {
		marker := " "
		for _, h := range highlight {
			if h == d {
				marker = color.GreenString("*")
				break
			}
		}
		fmt.Fprintf(out, "%s\t%s\n", marker, d)
	}
	fmt.Fprintf(out, "\n")
}
