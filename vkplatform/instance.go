package vkplatform

import (
	"sync"
	"unsafe"

	"github.com/celer/vkdebug"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

//Instance is a native Vulkan instance
type Instance struct {
	//VKInstance is the native Vulkan instance object
	VKInstance vk.Instance

	mu        sync.Mutex
	messenger []*Messenger
}

// CreateMessenger registers a debug report callback which forwards every
// report passing the descriptor filters to the descriptor callback.
func (i *Instance) CreateMessenger(desc *vkdebug.DebugDescriptor) (vkdebug.Messenger, error) {
	if desc == nil || desc.Callback == nil {
		return nil, errors.New("debug descriptor has no callback")
	}
	flags := ReportFlags(desc.Severities, desc.Types)
	if flags == 0 {
		return nil, errors.Errorf("debug descriptor selects nothing (severities %#x, types %s)", uint32(desc.Severities), desc.Types)
	}

	m := &Messenger{instance: i}
	ret := vk.CreateDebugReportCallback(i.VKInstance, &vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       flags,
		PfnCallback: trampoline(desc),
	}, nil, &m.VKCallback)
	if err := vk.Error(ret); err != nil {
		return nil, errors.Wrap(err, "vkCreateDebugReportCallbackEXT")
	}

	i.mu.Lock()
	i.messenger = append(i.messenger, m)
	i.mu.Unlock()
	return m, nil
}

// Destroy destroys any messenger still registered, then the instance
func (i *Instance) Destroy() {
	i.mu.Lock()
	messengers := i.messenger
	i.messenger = nil
	i.mu.Unlock()

	for _, m := range messengers {
		m.Destroy()
	}
	vk.DestroyInstance(i.VKInstance, nil)
}

// Messenger is a registered debug report callback
type Messenger struct {
	VKCallback vk.DebugReportCallback

	instance *Instance
	once     sync.Once
}

// Destroy unregisters the callback
func (m *Messenger) Destroy() {
	m.once.Do(func() {
		vk.DestroyDebugReportCallback(m.instance.VKInstance, m.VKCallback, nil)
	})
}

func trampoline(desc *vkdebug.DebugDescriptor) vk.DebugReportCallbackFunc {
	return func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
		object uint64, location uint, messageCode int32, pLayerPrefix string,
		pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

		ev := EventFromReport(flags, objectType, object, messageCode, pLayerPrefix, pMessage)
		if desc.Dispatch(&ev) {
			return vk.Bool32(vk.True)
		}
		// Returning false tells the layer not to stop when the event occurs
		return vk.Bool32(vk.False)
	}
}
