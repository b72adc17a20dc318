package service

import (
	"time"

	"github.com/SidS12345/Family-Connections/internal/dao/db/repository"
	myredis "github.com/SidS12345/Family-Connections/internal/dao/redis"
	"github.com/SidS12345/Family-Connections/internal/infrastructure/mq"
	"github.com/SidS12345/Family-Connections/internal/service/auth"
	"github.com/SidS12345/Family-Connections/internal/service/common"
	"github.com/SidS12345/Family-Connections/internal/service/message"
	"github.com/SidS12345/Family-Connections/internal/service/profile"
	"github.com/SidS12345/Family-Connections/internal/service/relationship"
	"github.com/SidS12345/Family-Connections/internal/service/tree"
	"github.com/SidS12345/Family-Connections/internal/service/user"
)

// Services aggregates every service. Handlers receive it through their constructors.
type Services struct {
	User         UserService
	Auth         AuthService
	Relationship RelationshipService
	Profile      ProfileService
	Tree         TreeService
	Message      MessageService
}

// NewServices wires the services.
// cache may be nil to run without Redis; publisher may be nil to drop events.
//
// Profile consults the relationship service's IsConnected; Message checks the
// same predicate inside its send transaction.
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService, cacheTTL time.Duration, publisher mq.Publisher) *Services {
	audit := common.NewAuditor(publisher)

	relSvc := relationship.NewRelationshipService(repos, asCache(cache), cacheTTL, audit)
	return &Services{
		User:         user.NewUserService(repos, cache, cacheTTL, audit),
		Auth:         auth.NewAuthService(asCache(cache)),
		Relationship: relSvc,
		Profile:      profile.NewProfileService(repos, relSvc),
		Tree:         tree.NewTreeService(repos),
		Message:      message.NewMessageService(repos, audit),
	}
}

// asCache narrows cache without turning a nil into a non-nil interface.
func asCache(cache myredis.AsyncCacheService) myredis.CacheService {
	if cache == nil {
		return nil
	}
	return cache
}
