package apc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutletOID(t *testing.T) {
	assert.Equal(t, "1.3.6.1.4.1.318.1.1.26.9.2.2.1.5.1", outletOID(oidOutletStateBase, 1))
	assert.Equal(t, "1.3.6.1.4.1.318.1.1.26.9.2.3.1.5.24", outletOID(oidOutletCommandBase, 24))
}

func TestLookupName(t *testing.T) {
	assert.Equal(t, "lowLoad", lookupName(loadStates, 1))
	assert.Equal(t, "overload", lookupName(loadStates, 4))

	// The MIB counts from 1; anything outside the table is unknown
	assert.Equal(t, "unknown", lookupName(loadStates, 0))
	assert.Equal(t, "unknown", lookupName(loadStates, -2))
	assert.Equal(t, "unknown", lookupName(loadStates, 9))
}

func TestOutletCommandValues(t *testing.T) {
	assert.Equal(t, 1, outletCommands["on"])
	assert.Equal(t, 2, outletCommands["off"])
	assert.Equal(t, 3, outletCommands["reboot"])
	assert.NotContains(t, outletCommands, "toggle")
}
