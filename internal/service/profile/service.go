// Package profile computes which profile fields a viewer may see.
package profile

import (
	"context"

	"github.com/SidS12345/Family-Connections/internal/dao/db/repository"
	"github.com/SidS12345/Family-Connections/internal/dto/respond"
	"github.com/SidS12345/Family-Connections/internal/model"
	"github.com/SidS12345/Family-Connections/internal/service/common"
)

// Connector is the connection predicate owned by the relationship service.
type Connector interface {
	IsConnected(ctx context.Context, a, b uint) (bool, error)
}

type profileService struct {
	repos     *repository.Repositories
	connector Connector
}

func NewProfileService(repos *repository.Repositories, connector Connector) *profileService {
	return &profileService{repos: repos, connector: connector}
}

// GetProfile returns target's profile as viewerID sees it.
// Each private field is exposed to the owner and to connections only;
// email has no flag and is exposed to the owner and connections only.
func (s *profileService) GetProfile(ctx context.Context, targetID, viewerID uint) (*respond.ProfileRespond, error) {
	if viewerID == 0 {
		return nil, common.Invalid("viewer is required")
	}
	user, err := s.repos.User.FindByID(targetID)
	if err != nil {
		return nil, common.DBError(err, "user not found")
	}

	isOwn := viewerID == targetID
	isConnected := false
	if !isOwn {
		if isConnected, err = s.connector.IsConnected(ctx, viewerID, targetID); err != nil {
			return nil, err
		}
	}
	return buildProfile(user, isOwn, isConnected), nil
}

func buildProfile(u *model.UserInfo, isOwn, isConnected bool) *respond.ProfileRespond {
	trusted := isOwn || isConnected
	expose := func(value *string, private bool) *string {
		if trusted || !private {
			return value
		}
		return nil
	}

	rsp := &respond.ProfileRespond{
		ID:              u.ID,
		Name:            u.Name,
		ProfilePic:      u.ProfilePic,
		Phone:           expose(u.Phone, u.PhonePrivate),
		Job:             expose(u.Job, u.JobPrivate),
		Bio:             expose(u.Bio, u.BioPrivate),
		Location:        expose(u.Location, u.LocationPrivate),
		PhonePrivate:    u.PhonePrivate,
		JobPrivate:      u.JobPrivate,
		BioPrivate:      u.BioPrivate,
		LocationPrivate: u.LocationPrivate,
		IsOwn:           isOwn,
		IsConnected:     isConnected,
	}
	if trusted {
		email := u.Email
		rsp.Email = &email
	}
	return rsp
}
