package vkplatform

import (
	"fmt"

	"github.com/celer/vkdebug"
	vk "github.com/vulkan-go/vulkan"
)

// ReportFlags translates messenger filters into debug report flags
func ReportFlags(severities vkdebug.SeverityFlags, types vkdebug.MessageType) vk.DebugReportFlags {
	var flags vk.DebugReportFlagBits
	if severities.Has(vkdebug.SeverityError) && types&(vkdebug.TypeValidation|vkdebug.TypeGeneral) != 0 {
		flags |= vk.DebugReportErrorBit
	}
	if severities.Has(vkdebug.SeverityWarning) {
		if types&(vkdebug.TypeValidation|vkdebug.TypeGeneral) != 0 {
			flags |= vk.DebugReportWarningBit
		}
		if types&vkdebug.TypePerformance != 0 {
			flags |= vk.DebugReportPerformanceWarningBit
		}
	}
	if types&vkdebug.TypeGeneral != 0 {
		if severities.Has(vkdebug.SeverityInfo) {
			flags |= vk.DebugReportInformationBit
		}
		if severities.Has(vkdebug.SeverityVerbose) {
			flags |= vk.DebugReportDebugBit
		}
	}
	return vk.DebugReportFlags(flags)
}

// severityOf picks the most severe bit in flags
func severityOf(flags vk.DebugReportFlags) (vkdebug.Severity, vkdebug.MessageType) {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		return vkdebug.SeverityError, vkdebug.TypeValidation
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		return vkdebug.SeverityWarning, vkdebug.TypePerformance
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		return vkdebug.SeverityWarning, vkdebug.TypeValidation
	case flags&vk.DebugReportFlags(vk.DebugReportInformationBit) != 0:
		return vkdebug.SeverityInfo, vkdebug.TypeGeneral
	default:
		return vkdebug.SeverityVerbose, vkdebug.TypeGeneral
	}
}

var objectTypeNames = map[vk.DebugReportObjectType]string{
	vk.DebugReportObjectTypeUnknown:        "UNKNOWN",
	vk.DebugReportObjectTypeInstance:       "INSTANCE",
	vk.DebugReportObjectTypePhysicalDevice: "PHYSICAL_DEVICE",
	vk.DebugReportObjectTypeDevice:         "DEVICE",
	vk.DebugReportObjectTypeQueue:          "QUEUE",
	vk.DebugReportObjectTypeCommandBuffer:  "COMMAND_BUFFER",
	vk.DebugReportObjectTypeBuffer:         "BUFFER",
	vk.DebugReportObjectTypeImage:          "IMAGE",
}

func objectTypeName(t vk.DebugReportObjectType) string {
	if name, ok := objectTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("OBJECT_TYPE_%d", int32(t))
}

// EventFromReport converts the arguments of a debug report callback
func EventFromReport(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, messageCode int32, layerPrefix string, message string) vkdebug.Event {

	severity, types := severityOf(flags)
	ev := vkdebug.Event{
		Severity:        severity,
		Types:           types,
		MessageIDName:   layerPrefix,
		MessageIDNumber: messageCode,
		Message:         []byte(message),
	}
	if object != 0 || objectType != vk.DebugReportObjectTypeUnknown {
		ev.Objects = []vkdebug.ObjectInfo{{
			Type:   objectTypeName(objectType),
			Handle: object,
		}}
	}
	return ev
}
