// Package access holds the authorization rules for every resource. Each
// request is checked twice: once before any object is loaded (action level)
// and once against the loaded object (object level). Rules are looked up by
// resource and action; a pair without a rule is denied.
package access

import (
	"coderr/internal/domain"
	"coderr/internal/pkg/apperr"
)

type Resource string

const (
	Offer       Resource = "offer"
	OfferDetail Resource = "offerdetail"
	Order       Resource = "order"
	Review      Resource = "review"
	Profile     Resource = "profile"
)

type Action string

const (
	List          Action = "list"
	Retrieve      Action = "retrieve"
	Create        Action = "create"
	Update        Action = "update"
	PartialUpdate Action = "partial_update"
	Destroy       Action = "destroy"
)

// Principal is the authenticated caller. The zero value is anonymous.
type Principal struct {
	UserID  int64
	Role    domain.UserRole
	IsStaff bool
}

func (p Principal) Authenticated() bool { return p.UserID > 0 }

// Object is anything whose owning users the rules can inspect.
type Object interface {
	AccessParties() domain.Parties
}

type actionRule func(Principal) bool

type objectRule func(Principal, domain.Parties) bool

type rule struct {
	action actionRule
	object objectRule
}

type key struct {
	resource Resource
	action   Action
}

func authenticated(p Principal) bool { return p.Authenticated() }

func hasRole(role domain.UserRole) actionRule {
	return func(p Principal) bool { return p.Authenticated() && p.Role == role }
}

func staff(p Principal) bool { return p.Authenticated() && p.IsStaff }

func anyObject(Principal, domain.Parties) bool { return true }

func isOwner(p Principal, o domain.Parties) bool { return o.Owner == p.UserID }

func isBusiness(p Principal, o domain.Parties) bool { return o.Business == p.UserID }

func isParticipant(p Principal, o domain.Parties) bool {
	return o.Customer == p.UserID || o.Business == p.UserID
}

func staffObject(p Principal, _ domain.Parties) bool { return p.IsStaff }

var rules = map[key]rule{
	{Offer, List}:          {authenticated, anyObject},
	{Offer, Retrieve}:      {authenticated, anyObject},
	{Offer, Create}:        {hasRole(domain.RoleBusiness), anyObject},
	{Offer, Update}:        {authenticated, isOwner},
	{Offer, PartialUpdate}: {authenticated, isOwner},
	{Offer, Destroy}:       {authenticated, isOwner},

	{OfferDetail, Retrieve}: {authenticated, anyObject},

	{Order, List}:          {authenticated, isParticipant},
	{Order, Retrieve}:      {authenticated, isParticipant},
	{Order, Create}:        {hasRole(domain.RoleCustomer), anyObject},
	{Order, Update}:        {authenticated, isBusiness},
	{Order, PartialUpdate}: {authenticated, isBusiness},
	{Order, Destroy}:       {staff, staffObject},

	{Review, List}:          {authenticated, anyObject},
	{Review, Retrieve}:      {authenticated, anyObject},
	{Review, Create}:        {hasRole(domain.RoleCustomer), anyObject},
	{Review, Update}:        {hasRole(domain.RoleCustomer), isOwner},
	{Review, PartialUpdate}: {hasRole(domain.RoleCustomer), isOwner},
	{Review, Destroy}:       {hasRole(domain.RoleCustomer), isOwner},

	{Profile, List}:          {authenticated, anyObject},
	{Profile, Retrieve}:      {authenticated, anyObject},
	{Profile, Update}:        {authenticated, isOwner},
	{Profile, PartialUpdate}: {authenticated, isOwner},
}

// CheckAction decides whether p may attempt action on resource at all.
func CheckAction(p Principal, resource Resource, action Action) error {
	if !p.Authenticated() {
		if r, ok := rules[key{resource, action}]; ok && r.action(p) {
			return nil
		}
		return apperr.ErrNotAuthenticated
	}
	r, ok := rules[key{resource, action}]
	if !ok || !r.action(p) {
		return apperr.ErrPermissionDenied
	}
	return nil
}

// CheckObject decides whether p may perform action on the loaded obj.
// It repeats the action-level check so callers cannot skip it.
func CheckObject(p Principal, resource Resource, action Action, obj Object) error {
	if err := CheckAction(p, resource, action); err != nil {
		return err
	}
	r := rules[key{resource, action}]
	if !r.object(p, obj.AccessParties()) {
		return apperr.ErrPermissionDenied
	}
	return nil
}

// ActionForMethod maps an HTTP method on a single object to its action.
func ActionForMethod(method string) Action {
	switch method {
	case "PUT":
		return Update
	case "PATCH":
		return PartialUpdate
	case "DELETE":
		return Destroy
	default:
		return Retrieve
	}
}
