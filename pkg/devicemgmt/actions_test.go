package devicemgmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionCatalog(t *testing.T) {
	actions := Actions()
	assert.Len(t, actions, 90)

	seen := make(map[string]bool, len(actions))
	for _, action := range actions {
		assert.True(t, action.Known(), "action %d should be known", action)
		name := action.String()
		assert.NotEqual(t, "Unknown", name)
		assert.False(t, seen[name], "duplicate catalog entry %s", name)
		seen[name] = true
	}

	assert.False(t, ActionUnknown.Known())
	assert.False(t, Action(200).Known())
	assert.Equal(t, "Unknown", ActionUnknown.String())
}

func TestActionURI(t *testing.T) {
	assert.Equal(t,
		"http://www.onvif.org/ver10/device/wsdl/GetDeviceInformation",
		ActionGetDeviceInformation.URI())
	assert.Equal(t,
		"http://www.onvif.org/ver10/device/wsdl/SystemReboot",
		ActionSystemReboot.URI())
}

func TestParseAction(t *testing.T) {
	for _, action := range Actions() {
		parsed, ok := ParseAction(action.String())
		require.True(t, ok, "expected %s to parse", action)
		assert.Equal(t, action, parsed)
	}

	_, ok := ParseAction("FrobnicateLens")
	assert.False(t, ok)
}

// The dispatch table and the generated catalog must agree on which
// actions are implemented; a mismatch means actions.yaml was edited
// without regenerating, or a table row is missing.
func TestDispatchTableMatchesCatalog(t *testing.T) {
	implemented := 0
	for _, action := range Actions() {
		_, ok := actionTable[action]
		assert.Equal(t, action.Implemented(), ok,
			"catalog and dispatch table disagree on %s", action)
		if ok {
			implemented++
		}
	}
	assert.Equal(t, len(actionTable), implemented)
	assert.Len(t, actionTable, 13)
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name       string
		params     Params
		wantErr    bool
		constraint string
	}{
		{name: "absent", params: Params{}},
		{name: "nil params", params: nil},
		{name: "valid", params: Params{"Category": "Device"}},
		{name: "all", params: Params{"Category": "All"}},
		{
			name:       "wrong type",
			params:     Params{"Category": 42},
			wantErr:    true,
			constraint: "must be a string",
		},
		{
			name:       "unknown category",
			params:     Params{"Category": "Lens"},
			wantErr:    true,
			constraint: "must be one of All, Analytics, Device, Events, Imaging, Media, PTZ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCategory(tt.params)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "Category", verr.Param)
			assert.Equal(t, tt.constraint, verr.Constraint)
		})
	}
}

func TestValidateIncludeCapability(t *testing.T) {
	assert.NoError(t, validateIncludeCapability(nil))
	assert.NoError(t, validateIncludeCapability(Params{"IncludeCapability": true}))

	err := validateIncludeCapability(Params{"IncludeCapability": "yes"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "IncludeCapability", verr.Param)
	assert.Equal(t, "must be a boolean", verr.Constraint)
}

func TestBodyBuilders(t *testing.T) {
	assert.Equal(t, "<tds:GetHostname/>", emptyBody("GetHostname")(nil))

	assert.Equal(t,
		"<tds:GetCapabilities><tds:Category>All</tds:Category></tds:GetCapabilities>",
		capabilitiesBody(nil))
	assert.Equal(t,
		"<tds:GetCapabilities><tds:Category>Media</tds:Category></tds:GetCapabilities>",
		capabilitiesBody(Params{"Category": "Media"}))

	assert.Equal(t,
		"<tds:GetServices><tds:IncludeCapability>false</tds:IncludeCapability></tds:GetServices>",
		servicesBody(nil))
	assert.Equal(t,
		"<tds:GetServices><tds:IncludeCapability>true</tds:IncludeCapability></tds:GetServices>",
		servicesBody(Params{"IncludeCapability": true}))
}

func TestNotImplementedErrorIs(t *testing.T) {
	err := &NotImplementedError{Action: ActionSetScopes}
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Contains(t, err.Error(), "SetScopes")
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Param: "Category", Constraint: "must be a string"}
	assert.Equal(t, "invalid parameter Category: must be a string", err.Error())
}
