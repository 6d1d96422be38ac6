package permission

import (
	"fmt"
	"sort"
)

// Set is a bitmask of granted actions. Policies store the raw mask; the API
// surface always presents permissions as action-name lists.
type Set uint64

// Workspace permissions. Bit positions are part of the stored format and must
// not be reordered.
const (
	GetWorkspace Set = 1 << iota
	UpdateWorkspace
	DeleteWorkspace
	GetWorkspaceMembers
	AddWorkspaceMembers
	RemoveWorkspaceMember
	GetGroups
	CreateGroup
	GetWorkspacePolicies
	GetWorkspacePolicy
	SetWorkspacePolicy
	GetPolls
	CreatePoll
	UpdatePoll
	DeletePoll
	GetPollResults
	GetGroup
	UpdateGroup
	DeleteGroup
	GetGroupMembers
	AddGroupMembers
	RemoveGroupMembers
)

var names = map[Set]string{
	GetWorkspace:          "get_workspace",
	UpdateWorkspace:       "update_workspace",
	DeleteWorkspace:       "delete_workspace",
	GetWorkspaceMembers:   "get_workspace_members",
	AddWorkspaceMembers:   "add_workspace_members",
	RemoveWorkspaceMember: "remove_workspace_member",
	GetGroups:             "get_groups",
	CreateGroup:           "create_group",
	GetWorkspacePolicies:  "get_workspace_policies",
	GetWorkspacePolicy:    "get_workspace_policy",
	SetWorkspacePolicy:    "set_workspace_policy",
	GetPolls:              "get_polls",
	CreatePoll:            "create_poll",
	UpdatePoll:            "update_poll",
	DeletePoll:            "delete_poll",
	GetPollResults:        "get_poll_results",
	GetGroup:              "get_group",
	UpdateGroup:           "update_group",
	DeleteGroup:           "delete_group",
	GetGroupMembers:       "get_group_members",
	AddGroupMembers:       "add_group_members",
	RemoveGroupMembers:    "remove_group_members",
}

var byName = func() map[string]Set {
	m := make(map[string]Set, len(names))
	for bit, name := range names {
		m[name] = bit
	}
	return m
}()

// All is the full permission set. The workspace owner holds it implicitly.
var All = func() Set {
	var s Set
	for bit := range names {
		s |= bit
	}
	return s
}()

// MemberDefault is granted to every account added to a workspace: read access
// plus voting-adjacent actions, no management rights.
const MemberDefault = GetWorkspace | GetWorkspaceMembers | GetGroups | GetPolls | GetPollResults

// Has reports whether every permission in required is present in s.
func (s Set) Has(required Set) bool {
	return s&required == required
}

// Names returns the sorted action names contained in s.
func (s Set) Names() []string {
	out := make([]string, 0)
	for bit, name := range names {
		if s&bit != 0 {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// FromNames builds a Set from action names. Unknown names are rejected so a
// typo in a policy update cannot silently grant nothing.
func FromNames(actions []string) (Set, error) {
	var s Set
	for _, name := range actions {
		bit, ok := byName[name]
		if !ok {
			return 0, fmt.Errorf("unknown permission %q", name)
		}
		s |= bit
	}
	return s, nil
}
