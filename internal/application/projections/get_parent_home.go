package projections

import (
	"context"

	"fastbreak/internal/domain/account"
	"fastbreak/internal/domain/camper"
	"fastbreak/internal/domain/contact"
	"fastbreak/internal/domain/registration"
)

// GetParentHomeQuery carries query parameters.
type GetParentHomeQuery struct {
	ParentID string
}

// GetParentHomeResult is everything the parent dashboard shows.
type GetParentHomeResult struct {
	Account       account.Account
	Campers       []camper.Camper
	Contacts      []contact.Contact
	Registrations []registration.Registration
	ContactNotice bool // fewer emergency contacts than recommended
}

// HomeGuardianStore defines the guardian store interface for this projection.
type HomeGuardianStore interface {
	ListCamperIDsByParent(ctx context.Context, parentID string) ([]string, error)
}

// HomeCamperStore defines the camper store interface for this projection.
type HomeCamperStore interface {
	ListByIDs(ctx context.Context, ids []string) ([]camper.Camper, error)
}

// HomeContactStore defines the contact store interface for this projection.
type HomeContactStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]contact.Contact, error)
}

// HomeRegistrationStore defines the registration store interface for this projection.
type HomeRegistrationStore interface {
	ListByAccount(ctx context.Context, accountID string) ([]registration.Registration, error)
}

// GetParentHomeDeps holds dependencies for GetParentHome.
type GetParentHomeDeps struct {
	AccountStore      BoardAccountStore
	GuardianStore     HomeGuardianStore
	CamperStore       HomeCamperStore
	ContactStore      HomeContactStore
	RegistrationStore HomeRegistrationStore
}

// QueryGetParentHome assembles the parent dashboard: the account, its
// linked campers, emergency contacts, and registration history.
// PRE: ParentID names an existing account
func QueryGetParentHome(ctx context.Context, query GetParentHomeQuery, deps GetParentHomeDeps) (GetParentHomeResult, error) {
	acct, err := deps.AccountStore.GetByID(ctx, query.ParentID)
	if err != nil {
		return GetParentHomeResult{}, err
	}

	camperIDs, err := deps.GuardianStore.ListCamperIDsByParent(ctx, query.ParentID)
	if err != nil {
		return GetParentHomeResult{}, err
	}
	var campers []camper.Camper
	if len(camperIDs) > 0 {
		campers, err = deps.CamperStore.ListByIDs(ctx, camperIDs)
		if err != nil {
			return GetParentHomeResult{}, err
		}
	}

	contacts, err := deps.ContactStore.ListByOwner(ctx, query.ParentID)
	if err != nil {
		return GetParentHomeResult{}, err
	}

	regs, err := deps.RegistrationStore.ListByAccount(ctx, query.ParentID)
	if err != nil {
		return GetParentHomeResult{}, err
	}

	return GetParentHomeResult{
		Account:       acct,
		Campers:       campers,
		Contacts:      contacts,
		Registrations: regs,
		ContactNotice: len(contacts) < contact.MinPerFamily,
	}, nil
}
