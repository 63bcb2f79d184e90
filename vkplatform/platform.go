// Package vkplatform implements vkdebug.Platform on top of the vulkan-go
// bindings.
package vkplatform

import (
	"unsafe"

	"github.com/celer/vkdebug"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// DebugReportExtension is the extension the messenger is built on
const DebugReportExtension = "VK_EXT_debug_report"

// Init loads the system Vulkan loader
func Init() error {
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return errors.Wrap(err, "could not find vulkan loader")
	}
	if err := vk.Init(); err != nil {
		return errors.Wrap(err, "could not initialize vulkan")
	}
	return nil
}

// InitWithProcAddr initializes Vulkan with the loader entry point of a
// windowing library such as glfw.
func InitWithProcAddr(getInstanceProcAddr unsafe.Pointer) error {
	if getInstanceProcAddr == nil {
		return errors.New("no vkGetInstanceProcAddr")
	}
	vk.SetGetInstanceProcAddr(getInstanceProcAddr)
	if err := vk.Init(); err != nil {
		return errors.Wrap(err, "could not initialize vulkan")
	}
	return nil
}

// Platform is the system Vulkan implementation. Init or InitWithProcAddr must
// be called first.
type Platform struct{}

var _ vkdebug.Platform = (*Platform)(nil)

// New returns the platform
func New() *Platform {
	return &Platform{}
}

// SupportedLayers returns the installed instance layers
func (p *Platform) SupportedLayers() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, errors.Wrap(err, "could not count instance layers")
	}
	layers := make([]vk.LayerProperties, count)
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, layers)); err != nil {
		return nil, errors.Wrap(err, "could not get instance layers")
	}
	names := make([]string, 0, count)
	for _, layer := range layers[:count] {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, nil
}

// SupportedExtensions returns the available instance extensions
func (p *Platform) SupportedExtensions() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, errors.Wrap(err, "could not count instance extensions")
	}
	extensions := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, extensions)); err != nil {
		return nil, errors.Wrap(err, "could not get instance extensions")
	}
	names := make([]string, 0, count)
	for _, ext := range extensions[:count] {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// DiagnosticExtension is VK_EXT_debug_report, the report callback is the one
// the Go bindings can trampoline into.
func (p *Platform) DiagnosticExtension() string {
	return DebugReportExtension
}

// CreateInstance creates a Vulkan instance from desc
func (p *Platform) CreateInstance(desc *vkdebug.InstanceDescriptor) (vkdebug.PlatformInstance, error) {
	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         vk.MakeVersion(desc.App.APIVersion.Major, desc.App.APIVersion.Minor, desc.App.APIVersion.Patch),
		ApplicationVersion: vk.MakeVersion(desc.App.Version.Major, desc.App.Version.Minor, desc.App.Version.Patch),
		PApplicationName:   vkdebug.SafeString(desc.App.Name),
		PEngineName:        vkdebug.SafeString(desc.App.EngineName),
	}

	layers := desc.Layers.CStrings()
	extensions := vkdebug.SafeStrings(desc.Extensions)

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		Flags:                   vk.InstanceCreateFlags(desc.Flags),
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	instance := &Instance{}
	if err := vk.Error(vk.CreateInstance(&createInfo, nil, &instance.VKInstance)); err != nil {
		return nil, errors.Wrapf(err, "vkCreateInstance with layers %v and extensions %v", desc.Layers.Strings(), desc.Extensions)
	}
	if err := vk.InitInstance(instance.VKInstance); err != nil {
		vk.DestroyInstance(instance.VKInstance, nil)
		return nil, errors.Wrap(err, "could not load instance functions")
	}
	return instance, nil
}
