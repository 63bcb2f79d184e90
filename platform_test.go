package vkdebug

import (
	"errors"
	"sync"
)

// fakePlatform records what CreateInstance was asked to do
type fakePlatform struct {
	layers     []string
	extensions []string
	layerErr   error
	createErr  error
	messageErr error

	mu        sync.Mutex
	queries   int
	created   []*InstanceDescriptor
	instances []*fakeInstance
	events    []string
}

func (p *fakePlatform) SupportedLayers() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries++
	if p.layerErr != nil {
		return nil, p.layerErr
	}
	return p.layers, nil
}

func (p *fakePlatform) SupportedExtensions() ([]string, error) {
	return p.extensions, nil
}

func (p *fakePlatform) DiagnosticExtension() string {
	return "VK_EXT_debug_utils"
}

func (p *fakePlatform) CreateInstance(desc *InstanceDescriptor) (PlatformInstance, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, desc)
	if p.createErr != nil {
		return nil, p.createErr
	}
	for _, ext := range desc.Extensions {
		if !containsString(p.extensions, ext) {
			return nil, errors.New("extension not present: " + ext)
		}
	}
	i := &fakeInstance{platform: p}
	p.instances = append(p.instances, i)
	p.events = append(p.events, "create instance")
	return i, nil
}

func (p *fakePlatform) record(event string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

type fakeInstance struct {
	platform  *fakePlatform
	debug     *DebugDescriptor
	destroyed int
}

func (i *fakeInstance) CreateMessenger(desc *DebugDescriptor) (Messenger, error) {
	if i.platform.messageErr != nil {
		return nil, i.platform.messageErr
	}
	i.debug = desc
	i.platform.record("create messenger")
	return &fakeMessenger{instance: i}, nil
}

func (i *fakeInstance) Destroy() {
	i.destroyed++
	i.platform.record("destroy instance")
}

// emit delivers ev the way the platform would on a validation failure
func (i *fakeInstance) emit(ev *Event) bool {
	return i.debug.Dispatch(ev)
}

type fakeMessenger struct {
	instance *fakeInstance
}

func (m *fakeMessenger) Destroy() {
	m.instance.platform.record("destroy messenger")
}
