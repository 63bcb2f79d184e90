package vkdebug

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlatform() *fakePlatform {
	return &fakePlatform{
		layers:     []string{"VK_LAYER_KHRONOS_validation", "VK_LAYER_LUNARG_api_dump"},
		extensions: []string{"VK_KHR_surface", "VK_EXT_debug_utils", PortabilityEnumerationExtension},
	}
}

func TestCreateInstanceWithValidation(t *testing.T) {
	p := testPlatform()
	var buf bytes.Buffer
	bridge := NewBridge(NewLogger(&buf, zerolog.TraceLevel, false))

	app := &App{Name: "Test"}
	app.EnableDebugging()
	app.EnableExtension("VK_KHR_surface")

	instance, err := app.CreateInstance(p, bridge)
	require.NoError(t, err)
	assert.True(t, instance.Validating())
	assert.Equal(t, []string{"VK_LAYER_KHRONOS_validation"}, instance.Layers.Strings())
	assert.Equal(t, []string{"VK_KHR_surface", "VK_EXT_debug_utils"}, instance.Extensions)

	require.Len(t, p.created, 1)
	desc := p.created[0]
	require.NotNil(t, desc.DebugDescriptor())
	assert.Equal(t, AllSeverities, desc.DebugDescriptor().Severities)
	assert.Equal(t, AllMessageTypes, desc.DebugDescriptor().Types)
	assert.Equal(t, 1, desc.App.APIVersion.Major)

	native := p.instances[0]
	assert.False(t, native.emit(&Event{Severity: SeverityError, Types: TypeValidation, Message: []byte("bad handle")}))
	assert.Contains(t, buf.String(), "bad handle")

	require.NoError(t, instance.Destroy())
	require.NoError(t, instance.Destroy())
	assert.Equal(t, []string{"create instance", "create messenger", "destroy messenger", "destroy instance"}, p.events)
	assert.Equal(t, 1, native.destroyed)
}

func TestCreateInstanceWithoutValidation(t *testing.T) {
	p := testPlatform()
	app := &App{Name: "Test"}

	instance, err := app.CreateInstance(p, nil)
	require.NoError(t, err)
	assert.False(t, instance.Validating())
	assert.Empty(t, instance.Layers)
	assert.Empty(t, instance.Extensions)
	assert.Nil(t, p.created[0].Next)

	require.NoError(t, instance.Destroy())
	assert.Equal(t, []string{"create instance", "destroy instance"}, p.events)
}

func TestCreateInstanceMissingMandatoryLayer(t *testing.T) {
	p := testPlatform()
	p.layers = []string{"VK_LAYER_LUNARG_api_dump"}

	app := &App{Name: "Test"}
	app.EnableDebugging()

	_, err := app.CreateInstance(p, NewBridge(zerolog.Nop()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCapabilityUnavailable)
	assert.Empty(t, p.created, "nothing is created when negotiation fails")
}

func TestCreateInstanceMissingOptionalLayer(t *testing.T) {
	p := testPlatform()
	p.layers = nil

	app := &App{Name: "Test", Validation: ValidationConfig{Enabled: true}}
	instance, err := app.CreateInstance(p, NewBridge(zerolog.Nop()))
	require.NoError(t, err)
	assert.Empty(t, instance.Layers)
	assert.True(t, instance.Validating())
	instance.Destroy()
}

func TestCreateInstanceRequiredLayers(t *testing.T) {
	p := testPlatform()

	app := &App{Name: "Test"}
	app.EnableLayer("VK_LAYER_LUNARG_api_dump").EnableLayer("VK_LAYER_LUNARG_api_dump")
	app.EnableDebugging()

	desc, err := app.Descriptor(p, NewBridge(zerolog.Nop()))
	require.NoError(t, err)
	assert.Equal(t, []string{"VK_LAYER_LUNARG_api_dump", "VK_LAYER_KHRONOS_validation"}, desc.Layers.Strings())

	app = &App{Name: "Test"}
	app.EnableLayer("VK_LAYER_missing")
	_, err = app.Descriptor(p, nil)
	assert.ErrorIs(t, err, ErrCapabilityUnavailable)
}

func TestCreateInstancePortability(t *testing.T) {
	p := testPlatform()
	app := &App{Name: "Test", Portability: true}

	desc, err := app.Descriptor(p, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{PortabilityEnumerationExtension}, desc.Extensions)
	assert.Equal(t, InstanceCreateEnumeratePortabilityBit, desc.Flags)
}

func TestCreateInstancePlatformFailure(t *testing.T) {
	p := testPlatform()
	p.createErr = errors.New("VK_ERROR_EXTENSION_NOT_PRESENT")

	app := &App{Name: "Test"}
	app.EnableDebugging()
	_, err := app.CreateInstance(p, NewBridge(zerolog.Nop()))
	assert.ErrorIs(t, err, p.createErr)
	assert.Empty(t, p.instances)
}

func TestCreateInstanceMessengerFailure(t *testing.T) {
	p := testPlatform()
	p.messageErr = errors.New("no debug extension")

	app := &App{Name: "Test"}
	app.EnableDebugging()
	_, err := app.CreateInstance(p, NewBridge(zerolog.Nop()))
	assert.ErrorIs(t, err, p.messageErr)
	require.Len(t, p.instances, 1)
	assert.Equal(t, 1, p.instances[0].destroyed, "no partial instance is left alive")
}

func TestValidationWithoutBridge(t *testing.T) {
	app := &App{Name: "Test"}
	app.EnableDebugging()
	_, err := app.CreateInstance(testPlatform(), nil)
	assert.Error(t, err)
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("1.3.216")
	require.NoError(t, err)
	assert.Equal(t, Version{1, 3, 216}, v)
	assert.Equal(t, "1.3.216", v.String())
	assert.Equal(t, uint32(1<<22|3<<12|216), v.Uint32())

	v, err = ParseVersion("2")
	require.NoError(t, err)
	assert.Equal(t, Version{Major: 2}, v)

	for _, bad := range []string{"1.x", "1.2.3.4", "-1"} {
		_, err = ParseVersion(bad)
		assert.Error(t, err, bad)
	}
}
