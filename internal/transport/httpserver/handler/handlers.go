package handler

import (
	"context"

	propertydomain "listings-api/internal/domain/property"
	proposaldomain "listings-api/internal/domain/proposal"
	relationdomain "listings-api/internal/domain/relation"
	visitdomain "listings-api/internal/domain/visit"
	"listings-api/internal/identity"
	"listings-api/pkg/logger"
)

// UserDirectory is the best-effort contact lookup used to enrich received
// listings. A nil result means the identity service declined or failed; the
// listing proceeds without the contact block.
type UserDirectory interface {
	UserInfo(ctx context.Context, subjectID, callerToken string) *identity.UserDetails
}

type Handlers struct {
	Visits     *visitdomain.Service
	Proposals  *proposaldomain.Service
	Relations  *relationdomain.Service
	Properties propertydomain.Repository
	users      UserDirectory
	log        logger.Logger
}

func New(
	visits *visitdomain.Service,
	proposals *proposaldomain.Service,
	relations *relationdomain.Service,
	properties propertydomain.Repository,
	users UserDirectory,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Visits:     visits,
		Proposals:  proposals,
		Relations:  relations,
		Properties: properties,
		users:      users,
		log:        log,
	}
}
