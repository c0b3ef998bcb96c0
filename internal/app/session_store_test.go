package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Relay/internal/domain"
)

func TestSessionStoreMembersKeepJoinOrder(t *testing.T) {
	s := NewSessionStore(domain.SessionCall)
	for i := 0; i < 5; i++ {
		s.AddMember("room1", domain.ConnectionID(fmt.Sprintf("c%d", i)), fmt.Sprintf("user%d", i))
	}

	members := s.Members("room1")
	require.Len(t, members, 5)
	for i, m := range members {
		assert.Equal(t, domain.ConnectionID(fmt.Sprintf("c%d", i)), m.ID)
	}
	assert.Equal(t, 5, s.MemberCount("room1"))
}

func TestSessionStoreRepeatedJoinOverwritesName(t *testing.T) {
	s := NewSessionStore(domain.SessionCall)
	s.AddMember("room1", "a", "Alice")
	s.AddMember("room1", "b", "Bob")
	s.AddMember("room1", "a", "Alicia")

	assert.Equal(t, []domain.Member{
		{ID: "a", DisplayName: "Alicia"},
		{ID: "b", DisplayName: "Bob"},
	}, s.Members("room1"))
}

func TestSessionStoreRemoveCollectsEmptySession(t *testing.T) {
	s := NewSessionStore(domain.SessionCall)
	s.AddMember("room1", "a", "Alice")
	s.AddMember("room1", "b", "Bob")

	assert.True(t, s.RemoveMember("room1", "a"))
	assert.False(t, s.RemoveMember("room1", "a"))
	assert.True(t, s.Has("room1"))

	assert.True(t, s.RemoveMember("room1", "b"))
	assert.False(t, s.Has("room1"))
	assert.Empty(t, s.Members("room1"))
	assert.Zero(t, s.MemberCount("room1"))
	assert.Empty(t, s.List())
}

func TestSessionStoreAbsentSession(t *testing.T) {
	s := NewSessionStore(domain.SessionStream)
	assert.NotNil(t, s.Members("nope"))
	assert.Empty(t, s.Members("nope"))
	assert.False(t, s.RemoveMember("nope", "a"))
	assert.Nil(t, s.MemberIDs("nope"))
}

func TestSessionStoreEnsureSession(t *testing.T) {
	s := NewSessionStore(domain.SessionCall)
	s.EnsureSession("room1")
	s.EnsureSession("room1")
	assert.True(t, s.Has("room1"))
	assert.Equal(t, 1, s.Len())
	assert.Zero(t, s.MemberCount("room1"))
}

func TestSessionStoreFirstSessionOfUsesCreationOrder(t *testing.T) {
	s := NewSessionStore(domain.SessionCall)
	s.AddMember("first", "x", "")
	s.AddMember("second", "a", "Alice")
	s.AddMember("third", "a", "Alice")

	sid, ok := s.FirstSessionOf("a")
	require.True(t, ok)
	assert.Equal(t, domain.SessionID("second"), sid)

	_, ok = s.FirstSessionOf("ghost")
	assert.False(t, ok)

	assert.Equal(t, []SessionInfo{
		{ID: "first", MemberCount: 1},
		{ID: "second", MemberCount: 1},
		{ID: "third", MemberCount: 1},
	}, s.List())
}
