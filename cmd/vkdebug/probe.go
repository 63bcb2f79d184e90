package main

import (
	"fmt"

	"github.com/celer/vkdebug"
	"github.com/celer/vkdebug/vkplatform"
	gu "github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Create an instance with validation and list the devices",
	Long: "Negotiate the validation layers, create an instance with a debug messenger, " +
		"list the physical devices and destroy everything again. Validation messages are logged as they arrive.",
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().Bool("validation", true, "enable validation layers and the debug messenger")
	probeCmd.Flags().StringSlice("layer", nil, "validation layer to request (repeatable)")
	probeCmd.Flags().Bool("optional", false, "continue without validation layers that are not installed")
	probeCmd.Flags().Bool("window", false, "load Vulkan through glfw and enable the surface extensions it requires")
	probeCmd.Flags().Bool("portability", false, "enumerate portability implementations (MoltenVK)")
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := setupColor(cmd); err != nil {
		return err
	}
	if err := applyProbeFlags(cmd, cfg); err != nil {
		return err
	}

	log := newLogger(cfg)

	app, err := cfg.NewApp()
	if err != nil {
		return err
	}
	app.Log = &log

	window, _ := cmd.Flags().GetBool("window")
	if window {
		extensions, cleanup, err := initWithGLFW()
		if err != nil {
			return err
		}
		defer cleanup()
		for _, ext := range extensions {
			app.EnableExtension(ext)
		}
	} else if err := vkplatform.Init(); err != nil {
		return err
	}

	bridge := vkdebug.NewBridge(log)
	instance, err := app.CreateInstance(vkplatform.New(), bridge)
	if err != nil {
		return err
	}
	defer instance.Destroy()

	native, ok := instance.Native.(*vkplatform.Instance)
	if !ok {
		return fmt.Errorf("unexpected platform instance %T", instance.Native)
	}
	devices, err := native.PhysicalDevices()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	state := color.YellowString("off")
	if instance.Validating() {
		state = color.GreenString("on")
	}
	fmt.Fprintf(out, "validation %s, layers %v\n", state, instance.Layers.Strings())
	for _, pd := range devices {
		fmt.Fprintf(out, "\n%s\n", pd)
		for h, size := range pd.HeapSizes {
			fmt.Fprintf(out, "\theap %d\t%s\n", h, gu.BytesSize(float64(size)))
		}
	}
	return nil
}

func applyProbeFlags(cmd *cobra.Command, cfg *vkdebug.Config) error {
	flags := cmd.Flags()
	if flags.Changed("validation") {
		cfg.Validation.Enabled, _ = flags.GetBool("validation")
	}
	if flags.Changed("layer") {
		layers, err := flags.GetStringSlice("layer")
		if err != nil {
			return err
		}
		cfg.Validation.Layers = layers
	}
	if flags.Changed("optional") {
		optional, _ := flags.GetBool("optional")
		cfg.Validation.Mandatory = !optional
	}
	if flags.Changed("portability") {
		cfg.App.Portability, _ = flags.GetBool("portability")
	}
	return nil
}

// initWithGLFW loads Vulkan through glfw and returns the instance extensions
// a window surface needs.
func initWithGLFW() ([]string, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, err
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("vulkan is not supported by glfw")
	}
	if err := vkplatform.InitWithProcAddr(glfw.GetVulkanGetInstanceProcAddress()); err != nil {
		glfw.Terminate()
		return nil, nil, err
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Visible, glfw.False)
	window, err := glfw.CreateWindow(64, 64, "vkdebug", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, err
	}
	extensions := window.GetRequiredInstanceExtensions()

	return extensions, func() {
		window.Destroy()
		glfw.Terminate()
	}, nil
}
