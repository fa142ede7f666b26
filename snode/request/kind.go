package request

import "fmt"

// Kind tags every sub-request variant.
type Kind int

const (
	KindRetrieveUser Kind = iota
	KindRetrieveGroup
	KindStoreUserMessage
	KindStoreUserConfig
	KindStoreGroupMessage
	KindStoreGroupConfig
	KindDeleteHashesUser
	KindDeleteHashesGroup
	KindDeleteAllUser
	KindDeleteAllGroup
	KindExpireUser
	KindExpireGroup
	KindGetExpiries
	KindRevokeSubaccount
	KindUnrevokeSubaccount
	KindGetServiceNodes
	KindOnsResolve
	KindGetSwarm
	KindNetworkTime
)

// Method is the wire name of an operation.
type Method string

const (
	MethodRetrieve     Method = "retrieve"
	MethodStore        Method = "store"
	MethodDelete       Method = "delete"
	MethodDeleteAll    Method = "delete_all"
	MethodExpire       Method = "expire"
	MethodGetExpiries  Method = "get_expiries"
	MethodRevoke       Method = "revoke_subaccount"
	MethodUnrevoke     Method = "unrevoke_subaccount"
	MethodOxendRequest Method = "oxend_request"
	MethodGetSwarm     Method = "get_swarm"
	MethodInfo         Method = "info"
)

// Method returns the wire method of the kind.
//
//exhaustive:enforce
func (k Kind) Method() Method {
	switch k {
	case KindRetrieveUser, KindRetrieveGroup:
		return MethodRetrieve
	case KindStoreUserMessage, KindStoreUserConfig, KindStoreGroupMessage, KindStoreGroupConfig:
		return MethodStore
	case KindDeleteHashesUser, KindDeleteHashesGroup:
		return MethodDelete
	case KindDeleteAllUser, KindDeleteAllGroup:
		return MethodDeleteAll
	case KindExpireUser, KindExpireGroup:
		return MethodExpire
	case KindGetExpiries:
		return MethodGetExpiries
	case KindRevokeSubaccount:
		return MethodRevoke
	case KindUnrevokeSubaccount:
		return MethodUnrevoke
	case KindGetServiceNodes, KindOnsResolve:
		return MethodOxendRequest
	case KindGetSwarm:
		return MethodGetSwarm
	case KindNetworkTime:
		return MethodInfo
	}
	panic(fmt.Sprintf("unknown request kind %d", int(k)))
}

func (k Kind) String() string {
	switch k {
	case KindRetrieveUser:
		return "retrieve-user"
	case KindRetrieveGroup:
		return "retrieve-group"
	case KindStoreUserMessage:
		return "store-user-message"
	case KindStoreUserConfig:
		return "store-user-config"
	case KindStoreGroupMessage:
		return "store-group-message"
	case KindStoreGroupConfig:
		return "store-group-config"
	case KindDeleteHashesUser:
		return "delete-hashes-user"
	case KindDeleteHashesGroup:
		return "delete-hashes-group"
	case KindDeleteAllUser:
		return "delete-all-user"
	case KindDeleteAllGroup:
		return "delete-all-group"
	case KindExpireUser:
		return "expire-user"
	case KindExpireGroup:
		return "expire-group"
	case KindGetExpiries:
		return "get-expiries"
	case KindRevokeSubaccount:
		return "revoke-subaccount"
	case KindUnrevokeSubaccount:
		return "unrevoke-subaccount"
	case KindGetServiceNodes:
		return "get-service-nodes"
	case KindOnsResolve:
		return "ons-resolve"
	case KindGetSwarm:
		return "get-swarm"
	case KindNetworkTime:
		return "network-time"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}
