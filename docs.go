/*
Package vkdebug turns on the Vulkan validation layers when an instance is created and routes what
they report into structured logging. Vulkan does very little error checking on its own; the
validation layers are the part of the SDK which does, and without a messenger their findings go
nowhere useful.

Overview

Enabling validation is two small steps which happen while the instance is created:

	1. Negotiate the layers: ask the loader which layers are installed and check the requested
	   validation layer is among them. A mandatory layer which is missing fails instance creation
	   before anything is created; an optional one is skipped with a warning.
	2. Register a messenger: add the extension the messenger needs, link a DebugDescriptor into
	   the instance descriptor and keep a messenger alive for the life of the instance. Every
	   message is handed to a Bridge which logs it with zerolog.

Terms
	Layer		an optional interception layer such as VK_LAYER_KHRONOS_validation
	Extension	an optional instance feature such as VK_EXT_debug_report
	CapabilityName	a layer or extension name in the fixed NUL terminated form Vulkan uses
	Messenger	the registration of a diagnostic callback on an instance
	Bridge		the callback which copies a message and logs it

Severities map onto log levels by threshold:

	ERROR and above		error
	WARNING and above	warn
	INFO and above		debug
	anything lower		trace

About this package

The package itself does not call Vulkan, it talks to a Platform. The vkplatform sub-package
implements Platform with github.com/vulkan-go/vulkan, tests use fakes. Validation is a field on
App rather than a build constant, so both paths can run in the same binary:

	app := &vkdebug.App{Name: "Myapp"}
	app.EnableDebugging()
	instance, err := app.CreateInstance(vkplatform.New(), vkdebug.NewBridge(log))
	...
	defer instance.Destroy() // destroys the messenger, then the instance

The minimum log level is read from VKDEBUG_LOG (error, warn, info, debug, trace).
*/
package vkdebug
