package devicemgmt

import (
	"fmt"
	"time"

	"github.com/onvif-protocol/onvif-go/pkg/log"
	"github.com/onvif-protocol/onvif-go/pkg/soap"
)

// Params carries action-specific parameters into Invoke. Values are
// checked at dispatch time against the action's declared constraints.
type Params map[string]any

// actionSpec wires one implemented action into the dispatch machine.
type actionSpec struct {
	// validate checks params before anything touches the network.
	// nil means the action accepts no parameters.
	validate func(params Params) error

	// body renders the action-specific request fragment.
	body func(params Params) string

	// post runs after a successful exchange, before the call settles.
	// captured is the local instant the transport returned.
	post func(s *Session, resp *soap.Response, captured time.Time)
}

// actionTable holds every implemented action. Adding an implementation
// means tagging the entry in actions.yaml and adding one row here; the
// four-step dispatch in invoke.go never changes.
var actionTable = map[Action]actionSpec{
	ActionGetSystemDateAndTime: {
		body: emptyBody("GetSystemDateAndTime"),
		post: recordSystemDateAndTime,
	},
	ActionGetDeviceInformation: {
		body: emptyBody("GetDeviceInformation"),
	},
	ActionGetCapabilities: {
		validate: validateCategory,
		body:     capabilitiesBody,
	},
	ActionGetServices: {
		validate: validateIncludeCapability,
		body:     servicesBody,
	},
	ActionGetServiceCapabilities: {
		body: emptyBody("GetServiceCapabilities"),
	},
	ActionGetHostname: {
		body: emptyBody("GetHostname"),
	},
	ActionGetScopes: {
		body: emptyBody("GetScopes"),
	},
	ActionGetDiscoveryMode: {
		body: emptyBody("GetDiscoveryMode"),
	},
	ActionGetDNS: {
		body: emptyBody("GetDNS"),
	},
	ActionGetNetworkInterfaces: {
		body: emptyBody("GetNetworkInterfaces"),
	},
	ActionGetNetworkProtocols: {
		body: emptyBody("GetNetworkProtocols"),
	},
	ActionGetNetworkDefaultGateway: {
		body: emptyBody("GetNetworkDefaultGateway"),
	},
	ActionSystemReboot: {
		body: emptyBody("SystemReboot"),
	},
}

// emptyBody returns a builder for actions whose request carries no
// parameters.
func emptyBody(name string) func(Params) string {
	fragment := "<tds:" + name + "/>"
	return func(Params) string { return fragment }
}

// capabilityCategories are the accepted GetCapabilities Category values.
var capabilityCategories = map[string]bool{
	"All":       true,
	"Analytics": true,
	"Device":    true,
	"Events":    true,
	"Imaging":   true,
	"Media":     true,
	"PTZ":       true,
}

func validateCategory(params Params) error {
	value, present := params["Category"]
	if !present {
		return nil
	}
	category, ok := value.(string)
	if !ok {
		return &ValidationError{Param: "Category", Constraint: "must be a string"}
	}
	if !capabilityCategories[category] {
		return &ValidationError{
			Param:      "Category",
			Constraint: "must be one of All, Analytics, Device, Events, Imaging, Media, PTZ",
		}
	}
	return nil
}

func capabilitiesBody(params Params) string {
	category := "All"
	if value, ok := params["Category"].(string); ok {
		category = value
	}
	return "<tds:GetCapabilities><tds:Category>" + category + "</tds:Category></tds:GetCapabilities>"
}

func validateIncludeCapability(params Params) error {
	value, present := params["IncludeCapability"]
	if !present {
		return nil
	}
	if _, ok := value.(bool); !ok {
		return &ValidationError{Param: "IncludeCapability", Constraint: "must be a boolean"}
	}
	return nil
}

func servicesBody(params Params) string {
	include := false
	if value, ok := params["IncludeCapability"].(bool); ok {
		include = value
	}
	return fmt.Sprintf("<tds:GetServices><tds:IncludeCapability>%t</tds:IncludeCapability></tds:GetServices>", include)
}

// recordSystemDateAndTime feeds a time-synchronization response into
// the session's skew estimate. A response without usable time fields
// skips the update and the call still resolves; the miss is only
// visible in the logs.
func recordSystemDateAndTime(s *Session, resp *soap.Response, captured time.Time) {
	deviceTime, ok := deviceTimeOf(resp)
	if !ok || deviceTime.UTC == nil {
		if s.logger != nil {
			s.logger.Debug("GetSystemDateAndTime: no usable UTC time in response, skew unchanged")
		}
		s.captureEvent(log.Event{
			Direction: log.DirectionIn,
			Layer:     log.LayerAction,
			Category:  log.CategoryError,
			Error: &log.ErrorEventData{
				Layer:   log.LayerAction,
				Message: "response carried no complete UTC time",
				Context: "GetSystemDateAndTime skew update",
			},
		})
		return
	}
	s.recordSkew(*deviceTime.UTC, captured)
}
