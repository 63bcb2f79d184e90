package vkdebug

// Callback receives diagnostic events from the platform. Returning true asks
// the platform to abort the call which triggered the event.
type Callback func(ev *Event, userData interface{}) bool

// Chained is an auxiliary descriptor which can be linked into the chain of an
// InstanceDescriptor, the way pNext structures extend a Vulkan create info.
type Chained interface {
	next() Chained
	setNext(Chained)
}

// DebugDescriptor configures a diagnostic messenger. The platform reads it
// while the instance is created, and the Instance keeps it for as long as the
// messenger it describes lives.
type DebugDescriptor struct {
	Severities SeverityFlags
	Types      MessageType
	Callback   Callback
	UserData   interface{}

	Next Chained
}

// NewDebugDescriptor selects every severity and every message type for cb
func NewDebugDescriptor(cb Callback) *DebugDescriptor {
	return &DebugDescriptor{
		Severities: AllSeverities,
		Types:      AllMessageTypes,
		Callback:   cb,
	}
}

func (d *DebugDescriptor) next() Chained     { return d.Next }
func (d *DebugDescriptor) setNext(n Chained) { d.Next = n }

// Wants reports whether an event with the given severity and types passes the
// descriptor filters.
func (d *DebugDescriptor) Wants(s Severity, t MessageType) bool {
	return d.Severities.Has(s) && d.Types&t != 0
}

// Dispatch delivers ev to the callback if the descriptor filters let it through
func (d *DebugDescriptor) Dispatch(ev *Event) bool {
	if d == nil || d.Callback == nil || ev == nil {
		return false
	}
	if !d.Wants(ev.Severity, ev.Types) {
		return false
	}
	return d.Callback(ev, d.UserData)
}

// InstanceCreateFlags mirrors VkInstanceCreateFlags
type InstanceCreateFlags uint32

// InstanceCreateEnumeratePortabilityBit lets the loader report portability
// implementations such as MoltenVK.
const InstanceCreateEnumeratePortabilityBit InstanceCreateFlags = 0x00000001

// AppInfo is the application description passed to the platform
type AppInfo struct {
	Name       string
	EngineName string
	Version    Version
	APIVersion Version
}

// InstanceDescriptor is everything the platform needs to create an instance
type InstanceDescriptor struct {
	App        AppInfo
	Layers     EnabledCapabilityList
	Extensions []string
	Flags      InstanceCreateFlags

	Next Chained
}

// Push links node at the head of the chain
func (d *InstanceDescriptor) Push(node Chained) {
	if node == nil {
		return
	}
	node.setNext(d.Next)
	d.Next = node
}

// DebugDescriptor returns the diagnostic node in the chain, if any
func (d *InstanceDescriptor) DebugDescriptor() *DebugDescriptor {
	for n := d.Next; n != nil; n = n.next() {
		if dd, ok := n.(*DebugDescriptor); ok {
			return dd
		}
	}
	return nil
}
