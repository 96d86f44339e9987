package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelID_SymmetricAndDeterministic(t *testing.T) {
	assert.Equal(t, "bob_alice", ChannelID("alice", "bob"))
	assert.Equal(t, "bob_alice", ChannelID("bob", "alice"))
	assert.Equal(t, ChannelID("alice", "bob"), ChannelID("bob", "alice"))
}

func TestChannelID_OpaqueIdentityReferences(t *testing.T) {
	a := "uid-9f8d7c"
	b := "uid-1a2b3c"

	assert.Equal(t, a+"_"+b, ChannelID(a, b))
	assert.Equal(t, a+"_"+b, ChannelID(b, a))
}
