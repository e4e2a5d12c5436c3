// Package devicemgmt implements a client for the ONVIF Device Management
// service.
//
// A Session holds the device service endpoint, the credentials, and the
// clock-skew estimate that keeps WS-Security digests valid against
// devices whose clocks drift from the caller's. One Session addresses
// one device; any number of sessions can run side by side.
//
// # Session Usage
//
//	session, err := devicemgmt.NewSession(devicemgmt.Config{
//	    XAddr:    "http://192.168.1.64/onvif/device_service",
//	    Username: "admin",
//	    Password: "secret",
//	})
//	if err != nil {
//	    // config problem
//	}
//
//	// Establish the clock-skew estimate first, then query freely.
//	dt, err := session.GetSystemDateAndTime(ctx)
//	info, err := session.GetDeviceInformation(ctx)
//
// # Generic Dispatch
//
// Every typed method runs through the same four-step dispatch, which is
// also available directly:
//
//	pending := session.Invoke(ctx, devicemgmt.ActionGetScopes, nil)
//	resp, err := pending.Wait(ctx)
//
// Invoke returns a Pending immediately; the call settles when the
// transport answers. A completion handler can be attached as well:
//
//	session.InvokeWithHandler(ctx, devicemgmt.ActionGetScopes, nil,
//	    func(resp *soap.Response, err error) { ... })
//
// The handler fires exactly once, with the same outcome Wait observes.
//
// # Clock Skew
//
// GetSystemDateAndTime is the only action that writes session state: on
// success it records skew = deviceUTC − localCapture (milliseconds).
// Every authenticated request stamps its security header with
// local-now + skew, so digests stay acceptable to the device no matter
// how wrong either clock is. A response without complete time fields
// leaves the previous skew in place and still resolves the call.
//
// # Action Catalog
//
// The Action enum covers the whole Device Management surface. Only a
// small set is implemented; the rest reject with NotImplementedError so
// callers can tell "not implemented here" apart from any device-side
// failure. The catalog lives in actions.yaml and actions_gen.go is
// generated from it by cmd/onvif-gen.
package devicemgmt

//go:generate go run github.com/onvif-protocol/onvif-go/cmd/onvif-gen -catalog actions.yaml -output actions_gen.go
