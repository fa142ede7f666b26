// Package namespace holds the static registry of swarm storage namespaces.
package namespace

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrUnknownNamespace is returned for a value that is not one of the registered namespaces.
var ErrUnknownNamespace = errors.New("namespace: unknown")

// Namespace is a logical storage partition within a swarm slot.
type Namespace int

const (
	// Default is where 1o1 messages are stored.
	Default Namespace = 0

	UserProfile       Namespace = 2
	UserContacts      Namespace = 3
	ConvoInfoVolatile Namespace = 4
	UserGroups        Namespace = 5

	// GroupRevokedRetrievable stores revoked sub-account tokens still readable by members.
	GroupRevokedRetrievable Namespace = -11
	GroupMessages           Namespace = 11
	GroupKeys               Namespace = 12
	GroupInfo               Namespace = 13
	GroupMembers            Namespace = 14
)

// Role is the fixed role of a namespace.
type Role string

const (
	RoleDefault       Role = "default"
	RoleUserProfile   Role = "userProfile"
	RoleUserContacts  Role = "userContacts"
	RoleConvoVolatile Role = "convoVolatile"
	RoleUserGroups    Role = "userGroups"
	RoleGroupMessages Role = "groupMsg"
	RoleGroupKeys     Role = "groupKeys"
	RoleGroupInfo     Role = "groupInfo"
	RoleGroupMembers  Role = "groupMembers"
	RoleGroupRevoked  Role = "groupRevoked"
)

const (
	// HighPriority is the tier of message namespaces.
	HighPriority = 10
	// LowPriority is the tier of config namespaces.
	LowPriority = 1
)

// All lists every registered namespace.
var All = []Namespace{
	Default,
	UserProfile,
	UserContacts,
	ConvoInfoVolatile,
	UserGroups,
	GroupRevokedRetrievable,
	GroupMessages,
	GroupKeys,
	GroupInfo,
	GroupMembers,
}

// UserConfig lists the namespaces of the user config wrappers.
var UserConfig = []Namespace{UserProfile, UserContacts, ConvoInfoVolatile, UserGroups}

// GroupConfig lists the namespaces of the group config wrappers.
var GroupConfig = []Namespace{GroupKeys, GroupInfo, GroupMembers}

func (ns Namespace) String() string {
	role, err := RoleOf(ns)
	if err != nil {
		return fmt.Sprintf("unknown(%d)", int(ns))
	}
	return string(role)
}

// RoleOf returns the role of ns.
//
//exhaustive:enforce
func RoleOf(ns Namespace) (Role, error) {
	switch ns {
	case Default:
		return RoleDefault, nil
	case UserProfile:
		return RoleUserProfile, nil
	case UserContacts:
		return RoleUserContacts, nil
	case ConvoInfoVolatile:
		return RoleConvoVolatile, nil
	case UserGroups:
		return RoleUserGroups, nil
	case GroupMessages:
		return RoleGroupMessages, nil
	case GroupKeys:
		return RoleGroupKeys, nil
	case GroupInfo:
		return RoleGroupInfo, nil
	case GroupMembers:
		return RoleGroupMembers, nil
	case GroupRevokedRetrievable:
		return RoleGroupRevoked, nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnknownNamespace, int(ns))
}

// Priority returns the priority tier of ns.
//
//exhaustive:enforce
func Priority(ns Namespace) (int, error) {
	switch ns {
	case Default, GroupMessages:
		return HighPriority, nil
	case UserProfile,
		UserContacts,
		ConvoInfoVolatile,
		UserGroups,
		GroupKeys,
		GroupInfo,
		GroupMembers,
		GroupRevokedRetrievable:
		return LowPriority, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownNamespace, int(ns))
}

// IsKnown returns true if ns is a registered namespace.
func IsKnown(ns Namespace) bool {
	return slices.Contains(All, ns)
}

// IsUserConfig returns true for the namespaces of the user config wrappers.
func IsUserConfig(ns Namespace) bool {
	return slices.Contains(UserConfig, ns)
}

// IsGroupConfig returns true for the namespaces of the group config wrappers.
func IsGroupConfig(ns Namespace) bool {
	return slices.Contains(GroupConfig, ns)
}

// IsGroupNamespace returns true for any namespace stored in a group swarm.
func IsGroupNamespace(ns Namespace) bool {
	return IsGroupConfig(ns) || ns == GroupMessages || ns == GroupRevokedRetrievable
}

// IsUserNamespace returns true for any namespace stored in a user swarm.
func IsUserNamespace(ns Namespace) bool {
	return ns == Default || IsUserConfig(ns)
}

// MaxSize is the slot allocation of a single namespace within a retrieve batch.
type MaxSize struct {
	Namespace Namespace
	MaxSize   int
}

// MaxSizeMap partitions the node's storage budget for one destination between namespaces.
//
// Namespaces are grouped by priority and tiers are processed from the highest one.
// Every tier except the lowest reserves one extra slot. The running split multiplies across
// tiers, so a namespace of a higher tier never gets a smaller share than one of a lower
// tier. A value of -k means 1/k of the budget. The result is ordered by tier.
func MaxSizeMap(namespaces []Namespace) ([]MaxSize, error) {
	var tiers []tier
	for _, ns := range namespaces {
		p, err := Priority(ns)
		if err != nil {
			return nil, err
		}
		idx := slices.IndexFunc(tiers, func(t tier) bool { return t.priority == p })
		if idx < 0 {
			tiers = append(tiers, tier{priority: p})
			idx = len(tiers) - 1
		}
		tiers[idx].namespaces = append(tiers[idx].namespaces, ns)
	}
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].priority > tiers[j].priority
	})

	rst := make([]MaxSize, 0, len(namespaces))
	lastSplit := 1
	for i, t := range tiers {
		padding := 1
		if i == len(tiers)-1 {
			padding = 0
		}
		lastSplit *= padding + len(t.namespaces)
		for _, ns := range t.namespaces {
			rst = append(rst, MaxSize{Namespace: ns, MaxSize: -lastSplit})
		}
	}
	return rst, nil
}

type tier struct {
	priority   int
	namespaces []Namespace
}
