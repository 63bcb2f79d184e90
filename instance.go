package vkdebug

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// PortabilityEnumerationExtension must be enabled to see portability
// implementations such as MoltenVK.
const PortabilityEnumerationExtension = "VK_KHR_portability_enumeration"

// Platform is the Vulkan implementation an App creates its instance on
type Platform interface {
	// SupportedLayers returns the names of the installed instance layers
	SupportedLayers() ([]string, error)
	// SupportedExtensions returns the names of the available instance extensions
	SupportedExtensions() ([]string, error)
	// DiagnosticExtension is the extension required to register a messenger
	DiagnosticExtension() string
	// CreateInstance creates an instance from desc. desc and its chain are
	// only read for the duration of the call.
	CreateInstance(desc *InstanceDescriptor) (PlatformInstance, error)
}

// PlatformInstance is a live instance created by a Platform
type PlatformInstance interface {
	CreateMessenger(desc *DebugDescriptor) (Messenger, error)
	Destroy()
}

// Messenger is an active registration of a diagnostic callback
type Messenger interface {
	Destroy()
}

// Version is used to specify versions of components
type Version struct {
	Major int
	Minor int
	Patch int
}

// Uint32 packs the version the way VK_MAKE_VERSION does
func (v Version) Uint32() uint32 {
	return uint32(v.Major)<<22 | uint32(v.Minor)<<12 | uint32(v.Patch)
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion parses "major[.minor[.patch]]"
func ParseVersion(s string) (Version, error) {
	var v Version
	if s == "" {
		return v, nil
	}
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return v, fmt.Errorf("invalid version %q", s)
	}
	fields := []*int{&v.Major, &v.Minor, &v.Patch}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version %q", s)
		}
		*fields[i] = n
	}
	return v, nil
}

// ValidationConfig controls the validation layers and the messenger
type ValidationConfig struct {
	// Enabled turns on validation layers and the diagnostic messenger
	Enabled bool `mapstructure:"enabled"`
	// Layers are the validation layers to request, ValidationLayer if empty
	Layers []string `mapstructure:"layers"`
	// Mandatory fails instance creation when a layer is missing
	Mandatory bool `mapstructure:"mandatory"`
}

// App is used to provide information about this specific application to Vulkan
type App struct {
	// Name the name of the application
	Name string
	// Engine the name of the engine associated with the application
	EngineName string
	// Version the version of the application
	Version Version
	// APIVersion the expected minimum version of the Vulkan API (i.e. 1.0.0)
	APIVersion Version

	// EnabledLayers are layers which must be present regardless of validation
	EnabledLayers []string

	// EnabledExtensions the enabled extensions
	EnabledExtensions []string

	// Validation configures the validation layers
	Validation ValidationConfig

	// Portability enumerates portability implementations as well
	Portability bool

	// Log receives the negotiation messages, nothing is logged when unset
	Log *zerolog.Logger
}

// EnableDebugging turns on the Khronos validation layer as a mandatory layer
func (a *App) EnableDebugging() *App {
	a.Validation.Enabled = true
	a.Validation.Mandatory = true
	if len(a.Validation.Layers) == 0 {
		a.Validation.Layers = []string{ValidationLayer.String()}
	}
	return a
}

// EnableLayer requests a layer which has to be installed
func (a *App) EnableLayer(layer string) *App {
	if !containsString(a.EnabledLayers, layer) {
		a.EnabledLayers = append(a.EnabledLayers, trimTerminator(layer))
	}
	return a
}

// Enable an extension for use by the application
func (a *App) EnableExtension(extension string) *App {
	if !containsString(a.EnabledExtensions, extension) {
		a.EnabledExtensions = append(a.EnabledExtensions, trimTerminator(extension))
	}
	return a
}

func (a *App) logger() zerolog.Logger {
	if a.Log == nil {
		return zerolog.Nop()
	}
	return *a.Log
}

func (a *App) appInfo() AppInfo {
	info := AppInfo{
		Name:       a.Name,
		EngineName: a.EngineName,
		Version:    a.Version,
		APIVersion: a.APIVersion,
	}
	if info.APIVersion.Major < 1 {
		info.APIVersion.Major = 1
	}
	return info
}

func toNames(list []string) ([]CapabilityName, error) {
	ret := make([]CapabilityName, 0, len(list))
	for _, s := range list {
		n, err := NewCapabilityName(s)
		if err != nil {
			return nil, err
		}
		ret = append(ret, n)
	}
	return ret, nil
}

// Descriptor negotiates the layers and builds the descriptor CreateInstance
// passes to the platform. bridge may be nil when validation is disabled.
func (a *App) Descriptor(p Platform, bridge *Bridge) (*InstanceDescriptor, error) {
	negotiator := NewNegotiator(p, a.logger())

	desc := &InstanceDescriptor{App: a.appInfo()}

	required, err := toNames(a.EnabledLayers)
	if err != nil {
		return nil, err
	}
	if len(required) > 0 {
		desc.Layers, err = negotiator.NegotiateAll(required, true)
		if err != nil {
			return nil, err
		}
	}

	if a.Validation.Enabled {
		requested := a.Validation.Layers
		if len(requested) == 0 {
			requested = []string{ValidationLayer.String()}
		}
		names, err := toNames(requested)
		if err != nil {
			return nil, err
		}
		validation, err := negotiator.NegotiateAll(names, a.Validation.Mandatory)
		if err != nil {
			return nil, err
		}
		for _, n := range validation {
			if !desc.Layers.Contains(n) {
				desc.Layers = append(desc.Layers, n)
			}
		}
	}

	desc.Extensions = append([]string(nil), a.EnabledExtensions...)
	negotiator.ExtendForDiagnostics(&desc.Extensions, a.Validation.Enabled)

	if a.Portability {
		ExtendForDiagnostics(&desc.Extensions, PortabilityEnumerationExtension, true)
		desc.Flags |= InstanceCreateEnumeratePortabilityBit
	}

	if a.Validation.Enabled {
		if bridge == nil {
			return nil, fmt.Errorf("validation enabled without a diagnostic bridge")
		}
		desc.Push(NewDebugDescriptor(bridge.Callback()))
	}

	return desc, nil
}

// CreateInstance creates the Vulkan instance. When validation is enabled the
// messenger delivering to bridge lives as long as the instance.
func (a *App) CreateInstance(p Platform, bridge *Bridge) (*Instance, error) {
	desc, err := a.Descriptor(p, bridge)
	if err != nil {
		return nil, err
	}

	native, err := p.CreateInstance(desc)
	if err != nil {
		return nil, fmt.Errorf("failed to create instance: %w", err)
	}

	instance := &Instance{
		Layers:     desc.Layers,
		Extensions: desc.Extensions,
		Native:     native,
		debug:      desc.DebugDescriptor(),
	}

	if instance.debug != nil {
		instance.messenger, err = native.CreateMessenger(instance.debug)
		if err != nil {
			native.Destroy()
			return nil, fmt.Errorf("failed to set up debug messenger: %w", err)
		}
	}

	log := a.logger()
	log.Info().
		Str("app", a.Name).
		Strs("layers", instance.Layers.Strings()).
		Strs("extensions", instance.Extensions).
		Bool("validation", instance.debug != nil).
		Msg("created instance")

	return instance, nil
}

//Instance is an instance of the Vulkan subsystem
type Instance struct {
	Layers     EnabledCapabilityList
	Extensions []string

	// Native is the platform instance
	Native PlatformInstance

	messenger Messenger
	debug     *DebugDescriptor
	once      sync.Once
}

// Validating reports whether a messenger is attached
func (i *Instance) Validating() bool {
	return i.messenger != nil
}

// Destroy destroys the messenger and then the instance it is registered on
func (i *Instance) Destroy() error {
	i.once.Do(func() {
		if i.messenger != nil {
			i.messenger.Destroy()
			i.messenger = nil
		}
		if i.Native != nil {
			i.Native.Destroy()
		}
		i.debug = nil
	})
	return nil
}
