package vkdebug

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrCapabilityUnavailable is matched by every CapabilityUnavailableError
var ErrCapabilityUnavailable = errors.New("capability unavailable")

// CapabilityUnavailableError is returned when a mandatory layer is not
// installed on this system.
type CapabilityUnavailableError struct {
	Name CapabilityName
}

func (e *CapabilityUnavailableError) Error() string {
	return fmt.Sprintf("validation layer '%s' requested but not supported", e.Name)
}

// Is makes errors.Is(err, ErrCapabilityUnavailable) work
func (e *CapabilityUnavailableError) Is(target error) bool {
	return target == ErrCapabilityUnavailable
}

// Negotiator decides which of the requested layers get enabled
type Negotiator struct {
	platform Platform
	log      zerolog.Logger
}

// NewNegotiator creates a negotiator querying p
func NewNegotiator(p Platform, log zerolog.Logger) *Negotiator {
	return &Negotiator{
		platform: p,
		log:      log.With().Str("component", "negotiator").Logger(),
	}
}

func (n *Negotiator) supported() (CapabilitySet, error) {
	layers, err := n.platform.SupportedLayers()
	if err != nil {
		return nil, fmt.Errorf("error getting supported layers: %w", err)
	}
	return NewCapabilitySet(layers), nil
}

// Negotiate checks requested against the installed layers. A missing
// mandatory layer fails with a CapabilityUnavailableError; a missing optional
// one yields an empty list.
func (n *Negotiator) Negotiate(requested CapabilityName, mandatory bool) (EnabledCapabilityList, error) {
	return n.NegotiateAll([]CapabilityName{requested}, mandatory)
}

// NegotiateAll is Negotiate for several layers. The result keeps the
// requested order and holds every name at most once.
func (n *Negotiator) NegotiateAll(requested []CapabilityName, mandatory bool) (EnabledCapabilityList, error) {
	set, err := n.supported()
	if err != nil {
		return nil, err
	}

	enabled := make(EnabledCapabilityList, 0, len(requested))
	for _, name := range requested {
		if !set.Has(name) {
			if mandatory {
				return nil, &CapabilityUnavailableError{Name: name}
			}
			n.log.Warn().Str("layer", name.String()).Msg("optional layer not installed, skipping")
			continue
		}
		if enabled.Contains(name) {
			continue
		}
		enabled = append(enabled, name)
	}

	n.log.Debug().Strs("layers", enabled.Strings()).Int("installed", len(set)).Msg("negotiated layers")
	return enabled, nil
}

// ExtendForDiagnostics appends the extension the platform needs to deliver
// diagnostic callbacks.
func (n *Negotiator) ExtendForDiagnostics(list *[]string, enabled bool) {
	ExtendForDiagnostics(list, n.platform.DiagnosticExtension(), enabled)
}

// ExtendForDiagnostics appends ext to list when enabled is set and ext is not
// there yet. It must run before the list is handed to instance creation.
func ExtendForDiagnostics(list *[]string, ext string, enabled bool) {
	if !enabled || list == nil || ext == "" {
		return
	}
	if containsString(*list, ext) {
		return
	}
	*list = append(*list, ext)
}
