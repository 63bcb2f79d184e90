package vkplatform

import (
	"fmt"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// PhysicalDevice summarizes a device visible through an instance
type PhysicalDevice struct {
	DeviceName string
	DeviceType string
	APIVersion string
	// HeapSizes are the sizes of the memory heaps in bytes
	HeapSizes []uint64

	VKPhysicalDevice vk.PhysicalDevice
}

func (p *PhysicalDevice) String() string {
	return fmt.Sprintf("%s (%s, Vulkan %s)", p.DeviceName, p.DeviceType, p.APIVersion)
}

func deviceTypeName(t vk.PhysicalDeviceType) string {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	}
	return "other"
}

func versionString(v uint32) string {
	return fmt.Sprintf("%d.%d.%d", v>>22, (v>>12)&0x3ff, v&0xfff)
}

//PhysicalDevices returns a list of physical devices known to Vulkan
func (i *Instance) PhysicalDevices() ([]*PhysicalDevice, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(i.VKInstance, &deviceCount, nil)); err != nil {
		return nil, errors.Wrap(err, "could not count physical devices")
	}
	if deviceCount == 0 {
		return nil, nil
	}

	devices := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(i.VKInstance, &deviceCount, devices)); err != nil {
		return nil, errors.Wrap(err, "could not get physical devices")
	}

	ret := make([]*PhysicalDevice, 0, deviceCount)
	for _, device := range devices[:deviceCount] {
		var props vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(device, &props)
		props.Deref()

		var mem vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(device, &mem)
		mem.Deref()

		pd := &PhysicalDevice{
			DeviceName:       vk.ToString(props.DeviceName[:]),
			DeviceType:       deviceTypeName(props.DeviceType),
			APIVersion:       versionString(props.ApiVersion),
			VKPhysicalDevice: device,
		}
		for h := uint32(0); h < mem.MemoryHeapCount; h++ {
			heap := mem.MemoryHeaps[h]
			heap.Deref()
			pd.HeapSizes = append(pd.HeapSizes, uint64(heap.Size))
		}
		ret = append(ret, pd)
	}
	return ret, nil
}
