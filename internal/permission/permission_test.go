package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHas(t *testing.T) {
	held := GetWorkspace | GetPolls | CreatePoll

	assert.True(t, held.Has(GetWorkspace))
	assert.True(t, held.Has(GetWorkspace|GetPolls))
	assert.False(t, held.Has(DeleteWorkspace))
	assert.False(t, held.Has(GetWorkspace|DeleteWorkspace))
	assert.True(t, All.Has(held))
}

func TestNamesRoundTrip(t *testing.T) {
	s := GetWorkspace | AddWorkspaceMembers | SetWorkspacePolicy

	got := s.Names()
	assert.Equal(t, []string{"add_workspace_members", "get_workspace", "set_workspace_policy"}, got)

	back, err := FromNames(got)
	assert.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestFromNames(t *testing.T) {
	t.Run("unknown name rejected", func(t *testing.T) {
		_, err := FromNames([]string{"get_workspace", "launch_missiles"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "launch_missiles")
	})

	t.Run("empty list is empty set", func(t *testing.T) {
		s, err := FromNames(nil)
		assert.NoError(t, err)
		assert.Equal(t, Set(0), s)
	})
}

func TestMemberDefault(t *testing.T) {
	// Regular members can read but not manage.
	assert.True(t, MemberDefault.Has(GetWorkspace))
	assert.True(t, MemberDefault.Has(GetPolls))
	assert.False(t, MemberDefault.Has(CreatePoll))
	assert.False(t, MemberDefault.Has(SetWorkspacePolicy))
	assert.False(t, MemberDefault.Has(RemoveWorkspaceMember))
}

func TestAllCoversEveryName(t *testing.T) {
	assert.Len(t, All.Names(), len(names))
}

func TestVocabulary(t *testing.T) {
	// Policies attach at workspace scope only, with account or group
	// holders, so there are no group-policy action names.
	assert.Equal(t, []string{
		"add_group_members",
		"add_workspace_members",
		"create_group",
		"create_poll",
		"delete_group",
		"delete_poll",
		"delete_workspace",
		"get_group",
		"get_group_members",
		"get_groups",
		"get_poll_results",
		"get_polls",
		"get_workspace",
		"get_workspace_members",
		"get_workspace_policies",
		"get_workspace_policy",
		"remove_group_members",
		"remove_workspace_member",
		"set_workspace_policy",
		"update_group",
		"update_poll",
		"update_workspace",
	}, All.Names())
}
