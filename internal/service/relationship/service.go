// Package relationship implements the relationship state machine: proposing,
// answering and amending relationships, plus the connection predicate used by
// the profile and messaging services.
package relationship

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/SidS12345/Family-Connections/internal/dao/db/repository"
	myredis "github.com/SidS12345/Family-Connections/internal/dao/redis"
	"github.com/SidS12345/Family-Connections/internal/dto/respond"
	"github.com/SidS12345/Family-Connections/internal/infrastructure/metrics"
	"github.com/SidS12345/Family-Connections/internal/infrastructure/mq"
	"github.com/SidS12345/Family-Connections/internal/model"
	"github.com/SidS12345/Family-Connections/internal/service/common"
	"github.com/SidS12345/Family-Connections/pkg/constants"
	"github.com/SidS12345/Family-Connections/pkg/errorx"
)

const (
	maxLabelLen = 50

	// secondDeleteDelay covers a ListConnections that read the old rows before
	// the commit and writes its result after the first delete.
	secondDeleteDelay = 500 * time.Millisecond
)

type relationshipService struct {
	repos       *repository.Repositories
	cache       myredis.CacheService // nil disables caching
	cacheTTL    time.Duration
	audit       *common.Auditor
	secondDelay time.Duration
}

// NewRelationshipService wires the service. cache may be nil.
func NewRelationshipService(repos *repository.Repositories, cache myredis.CacheService, cacheTTL time.Duration, audit *common.Auditor) *relationshipService {
	return &relationshipService{repos: repos, cache: cache, cacheTTL: cacheTTL, audit: audit, secondDelay: secondDeleteDelay}
}

// cleanLabel trims a relationship label and rejects empty or oversized ones.
func cleanLabel(label, field string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", common.Invalid(field + " is required")
	}
	if utf8.RuneCountInString(label) > maxLabelLen {
		return "", common.Invalid(field + " is too long")
	}
	return label, nil
}

// Propose creates a pending relationship from fromID to toID.
// Duplicate proposals between the same pair are allowed.
func (s *relationshipService) Propose(ctx context.Context, fromID, toID uint, relationshipType string) (*respond.RelationshipRespond, error) {
	// 1. validate input
	label, err := cleanLabel(relationshipType, "relationship_type")
	if err != nil {
		return nil, err
	}
	if fromID == toID {
		return nil, common.Invalid("cannot propose a relationship with yourself")
	}

	// 2. both users must exist; insert pending row
	rel := &model.Relationship{
		FromUserID:       fromID,
		ToUserID:         toID,
		RelationshipType: label,
		Status:           model.StatusPending,
	}
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if _, err := tx.User.FindByID(fromID); err != nil {
			return common.DBError(err, "user not found")
		}
		if _, err := tx.User.FindByID(toID); err != nil {
			return common.DBError(err, "target user not found")
		}
		return common.DBError(tx.Relationship.Create(rel), "")
	})
	if err != nil {
		return nil, err
	}

	// 3. report
	metrics.RelationshipTransitions.WithLabelValues("proposed").Inc()
	s.audit.Publish(ctx, mq.NewEvent(mq.EventRelationshipProposed, fromID, toID, rel.ID).With("relationship_type", label))
	return toRelationshipRespond(rel), nil
}

// Respond lets the recipient approve (with a reverse label) or decline a pending relationship.
func (s *relationshipService) Respond(ctx context.Context, relationshipID, responderID uint, decision, reverseType string) (*respond.RelationshipRespond, error) {
	// 1. validate decision and reverse label before touching the row
	status, ok := model.ParseDecision(decision)
	if !ok {
		return nil, common.Invalid("decision must be approved or declined")
	}
	var reverse string
	if status == model.StatusApproved {
		var err error
		if reverse, err = cleanLabel(reverseType, "reverse_relationship_type"); err != nil {
			return nil, err
		}
	}

	// 2. transition inside one transaction
	var rel *model.Relationship
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		var err error
		rel, err = tx.Relationship.FindByID(relationshipID)
		if err != nil {
			return common.DBError(err, "relationship not found")
		}
		if rel.ToUserID != responderID {
			return s.audit.Forbidden(ctx, "relationship.respond", responderID, relationshipID, "only the recipient may respond")
		}
		if rel.Status != model.StatusPending {
			return common.Invalid("relationship has already been " + string(rel.Status))
		}
		rel.Status = status
		if status == model.StatusApproved {
			rel.ReverseRelationshipType = &reverse
			rel.IsBidirectional = true
		}
		// the write is conditional on the row still being pending, so of two
		// concurrent answers exactly one lands
		changed, err := tx.Relationship.ResolvePending(rel)
		if err != nil {
			return common.DBError(err, "relationship not found")
		}
		if !changed {
			return common.Invalid("relationship has already been answered")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. connections changed for both parties
	if status == model.StatusApproved {
		s.invalidateConnections(ctx, rel.FromUserID, rel.ToUserID)
	}
	metrics.RelationshipTransitions.WithLabelValues(string(status)).Inc()
	s.audit.Publish(ctx, mq.NewEvent(mq.EventRelationshipResponded, responderID, rel.FromUserID, rel.ID).With("decision", string(status)))
	return toRelationshipRespond(rel), nil
}

// EditDirect overwrites the requester's own label immediately: relationship_type
// for the proposer, reverse_relationship_type for the recipient.
func (s *relationshipService) EditDirect(ctx context.Context, relationshipID, requesterID uint, newType string) (*respond.RelationshipRespond, error) {
	label, err := cleanLabel(newType, "new_relationship_type")
	if err != nil {
		return nil, err
	}

	var rel *model.Relationship
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		var err error
		rel, err = tx.Relationship.FindByID(relationshipID)
		if err != nil {
			return common.DBError(err, "relationship not found")
		}
		var field model.EditField
		switch requesterID {
		case rel.FromUserID:
			field = model.FieldRelationshipType
		case rel.ToUserID:
			field = model.FieldReverseRelationshipType
		default:
			return s.audit.Forbidden(ctx, "relationship.edit", requesterID, relationshipID, "not a party to this relationship")
		}
		// only the one column is written so a concurrent Respond is not undone
		rel.SetLabel(field, label)
		return common.DBError(tx.Relationship.UpdateLabel(rel.ID, field, label), "relationship not found")
	})
	if err != nil {
		return nil, err
	}

	s.invalidateConnections(ctx, rel.FromUserID, rel.ToUserID)
	metrics.RelationshipTransitions.WithLabelValues("edited").Inc()
	s.audit.Publish(ctx, mq.NewEvent(mq.EventRelationshipEdited, requesterID, rel.Other(requesterID), rel.ID).With("label", label))
	return toRelationshipRespond(rel), nil
}

// ProposeEdit asks the other party to accept a change to one label.
func (s *relationshipService) ProposeEdit(ctx context.Context, requesterID, relationshipID, targetID uint, newType, field string) (*respond.EditRequestRespond, error) {
	// 1. validate input
	editField, ok := model.ParseEditField(field)
	if !ok {
		return nil, common.Invalid("field_to_change must be relationship_type or reverse_relationship_type")
	}
	label, err := cleanLabel(newType, "new_relationship_type")
	if err != nil {
		return nil, err
	}

	// 2. requester must be a party and target the other party
	var req *model.RelationshipEditRequest
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		rel, err := tx.Relationship.FindByID(relationshipID)
		if err != nil {
			return common.DBError(err, "relationship not found")
		}
		if !rel.IsParty(requesterID) {
			return s.audit.Forbidden(ctx, "relationship.propose_edit", requesterID, relationshipID, "not a party to this relationship")
		}
		if targetID != rel.Other(requesterID) {
			return common.Invalid("target_user_id must be the other party of the relationship")
		}
		req = &model.RelationshipEditRequest{
			RelationshipID:          rel.ID,
			RequestingUserID:        requesterID,
			TargetUserID:            targetID,
			CurrentRelationshipType: rel.Label(editField),
			NewRelationshipType:     label,
			FieldToChange:           editField,
			Status:                  model.StatusPending,
		}
		return common.DBError(tx.EditRequest.Create(req), "")
	})
	if err != nil {
		return nil, err
	}

	metrics.RelationshipTransitions.WithLabelValues("edit_requested").Inc()
	s.audit.Publish(ctx, mq.NewEvent(mq.EventEditRequested, requesterID, targetID, req.ID).With("field", string(editField)))
	return toEditRequestRespond(req, ""), nil
}

// ResolveEdit lets the target approve or decline a pending edit request.
// On approval the named label is overwritten; a relationship deleted in the
// meantime is tolerated and the request is still resolved.
func (s *relationshipService) ResolveEdit(ctx context.Context, editRequestID, responderID uint, decision string) (*respond.EditRequestRespond, error) {
	status, ok := model.ParseDecision(decision)
	if !ok {
		return nil, common.Invalid("decision must be approved or declined")
	}

	var (
		req *model.RelationshipEditRequest
		rel *model.Relationship
	)
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		var err error
		req, err = tx.EditRequest.FindByID(editRequestID)
		if err != nil {
			return common.DBError(err, "edit request not found")
		}
		if req.TargetUserID != responderID {
			return s.audit.Forbidden(ctx, "relationship.resolve_edit", responderID, editRequestID, "only the target may resolve an edit request")
		}
		if req.Status != model.StatusPending {
			return common.Invalid("edit request has already been " + string(req.Status))
		}

		// claim the request first; the label is only written by the answer that won
		changed, err := tx.EditRequest.ResolvePending(req.ID, status)
		if err != nil {
			return common.DBError(err, "edit request not found")
		}
		if !changed {
			return common.Invalid("edit request has already been resolved")
		}
		req.Status = status
		if status != model.StatusApproved {
			return nil
		}

		rel, err = tx.Relationship.FindByID(req.RelationshipID)
		switch {
		case errorx.IsNotFound(err):
			rel = nil
			zap.L().Info("edit request approved for missing relationship",
				zap.Uint("edit_request_id", req.ID), zap.Uint("relationship_id", req.RelationshipID))
			return nil
		case err != nil:
			return common.DBError(err, "")
		}
		rel.SetLabel(req.FieldToChange, req.NewRelationshipType)
		return common.DBError(tx.Relationship.UpdateLabel(rel.ID, req.FieldToChange, req.NewRelationshipType), "relationship not found")
	})
	if err != nil {
		return nil, err
	}

	if rel != nil {
		s.invalidateConnections(ctx, rel.FromUserID, rel.ToUserID)
	}
	metrics.RelationshipTransitions.WithLabelValues("edit_" + string(status)).Inc()
	s.audit.Publish(ctx, mq.NewEvent(mq.EventEditResolved, responderID, req.RequestingUserID, req.ID).With("decision", string(status)))
	return toEditRequestRespond(req, ""), nil
}

// DeleteRelationship removes a relationship and its edit requests. Only a party may delete it.
func (s *relationshipService) DeleteRelationship(ctx context.Context, relationshipID, requesterID uint) error {
	var rel *model.Relationship
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		var err error
		rel, err = tx.Relationship.FindByID(relationshipID)
		if err != nil {
			return common.DBError(err, "relationship not found")
		}
		if !rel.IsParty(requesterID) {
			return s.audit.Forbidden(ctx, "relationship.delete", requesterID, relationshipID, "not a party to this relationship")
		}
		if err := tx.EditRequest.DeleteByRelationship(rel.ID); err != nil {
			return common.DBError(err, "")
		}
		return common.DBError(tx.Relationship.DeleteByID(rel.ID), "relationship not found")
	})
	if err != nil {
		return err
	}

	s.invalidateConnections(ctx, rel.FromUserID, rel.ToUserID)
	metrics.RelationshipTransitions.WithLabelValues("deleted").Inc()
	s.audit.Publish(ctx, mq.NewEvent(mq.EventRelationshipDeleted, requesterID, rel.Other(requesterID), rel.ID))
	return nil
}

// IsConnected reports whether a and b share an approved bidirectional relationship.
// It is symmetric; a user is never connected to themself.
func (s *relationshipService) IsConnected(ctx context.Context, a, b uint) (bool, error) {
	if a == b {
		return false, nil
	}
	ok, err := s.repos.Relationship.ExistsConnection(a, b)
	if err != nil {
		return false, common.DBError(err, "")
	}
	return ok, nil
}

// ListIncoming lists pending requests addressed to userID.
func (s *relationshipService) ListIncoming(ctx context.Context, userID uint) ([]respond.PendingRequestRespond, error) {
	rels, err := s.repos.Relationship.FindPendingTo(userID)
	if err != nil {
		return nil, common.DBError(err, "")
	}
	return s.pendingRespond(rels, func(r model.Relationship) uint { return r.FromUserID })
}

// ListOutgoing lists pending requests sent by userID.
func (s *relationshipService) ListOutgoing(ctx context.Context, userID uint) ([]respond.PendingRequestRespond, error) {
	rels, err := s.repos.Relationship.FindPendingFrom(userID)
	if err != nil {
		return nil, common.DBError(err, "")
	}
	return s.pendingRespond(rels, func(r model.Relationship) uint { return r.ToUserID })
}

// ListIncomingEdits lists pending edit requests awaiting userID.
func (s *relationshipService) ListIncomingEdits(ctx context.Context, userID uint) ([]respond.EditRequestRespond, error) {
	reqs, err := s.repos.EditRequest.FindPendingByTarget(userID)
	if err != nil {
		return nil, common.DBError(err, "")
	}
	ids := make([]uint, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.RequestingUserID)
	}
	names, err := s.userNames(ids)
	if err != nil {
		return nil, err
	}
	out := make([]respond.EditRequestRespond, 0, len(reqs))
	for i := range reqs {
		out = append(out, *toEditRequestRespond(&reqs[i], names[reqs[i].RequestingUserID]))
	}
	return out, nil
}

// ListConnections lists userID's connections with labels resolved from userID's side.
// Results are cached per user and invalidated on every transition touching them.
func (s *relationshipService) ListConnections(ctx context.Context, userID uint) ([]respond.ConnectionRespond, error) {
	key := constants.REDIS_CONNECTIONS_PREFIX + strconv.FormatUint(uint64(userID), 10)
	var cached []respond.ConnectionRespond
	hit, err := myredis.GetJSON(ctx, s.cache, key, &cached)
	if err != nil {
		zap.L().Warn("read connections cache", zap.Error(err))
	}
	if s.cache != nil {
		metrics.ObserveCache("connections", hit)
	}
	if hit {
		return cached, nil
	}

	rels, err := s.repos.Relationship.FindConnections(userID)
	if err != nil {
		return nil, common.DBError(err, "")
	}
	others := make([]uint, 0, len(rels))
	for _, r := range rels {
		others = append(others, r.Other(userID))
	}
	users, err := s.repos.User.FindByIDs(others)
	if err != nil {
		return nil, common.DBError(err, "")
	}
	byID := make(map[uint]model.UserInfo, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]respond.ConnectionRespond, 0, len(rels))
	for i := range rels {
		r := &rels[i]
		other, ok := byID[r.Other(userID)]
		if !ok {
			continue
		}
		forward := r.RelationshipType
		my, their := &forward, r.ReverseRelationshipType
		if r.ToUserID == userID {
			my, their = r.ReverseRelationshipType, &forward
		}
		out = append(out, respond.ConnectionRespond{
			RelationshipID:        r.ID,
			User:                  respond.PublicUserRespond{ID: other.ID, Name: other.Name, ProfilePic: other.ProfilePic},
			MyRelationshipType:    my,
			TheirRelationshipType: their,
		})
	}

	if err := myredis.SetJSON(ctx, s.cache, key, out, s.cacheTTL); err != nil {
		zap.L().Warn("write connections cache", zap.Error(err))
	}
	return out, nil
}

// SuggestReverse proposes a reverse label for a relationship the viewer is party to.
func (s *relationshipService) SuggestReverse(ctx context.Context, relationshipID, viewerID uint) (*respond.SuggestionRespond, error) {
	rel, err := s.repos.Relationship.FindByID(relationshipID)
	if err != nil {
		return nil, common.DBError(err, "relationship not found")
	}
	if !rel.IsParty(viewerID) {
		return nil, s.audit.Forbidden(ctx, "relationship.suggest", viewerID, relationshipID, "not a party to this relationship")
	}
	proposer, err := s.repos.User.FindByID(rel.FromUserID)
	if err != nil {
		return nil, common.DBError(err, "user not found")
	}

	out := &respond.SuggestionRespond{RelationshipType: rel.RelationshipType}
	if label, ok := SuggestReverseLabel(rel.RelationshipType, proposer.Gender); ok {
		out.Suggestion = &label
	}
	return out, nil
}

// ==================== helpers ====================

func (s *relationshipService) pendingRespond(rels []model.Relationship, counterpart func(model.Relationship) uint) ([]respond.PendingRequestRespond, error) {
	ids := make([]uint, 0, len(rels))
	for _, r := range rels {
		ids = append(ids, counterpart(r))
	}
	names, err := s.userNames(ids)
	if err != nil {
		return nil, err
	}
	out := make([]respond.PendingRequestRespond, 0, len(rels))
	for _, r := range rels {
		id := counterpart(r)
		out = append(out, respond.PendingRequestRespond{
			RelationshipID:   r.ID,
			UserID:           id,
			UserName:         names[id],
			RelationshipType: r.RelationshipType,
			CreatedAt:        r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *relationshipService) userNames(ids []uint) (map[uint]string, error) {
	users, err := s.repos.User.FindByIDs(ids)
	if err != nil {
		return nil, common.DBError(err, "")
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}

// invalidateConnections drops the cached connection lists of userIDs now and
// once more after secondDelay.
func (s *relationshipService) invalidateConnections(ctx context.Context, userIDs ...uint) {
	if s.cache == nil {
		return
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, constants.REDIS_CONNECTIONS_PREFIX+strconv.FormatUint(uint64(id), 10))
	}
	s.deleteKeys(ctx, keys)

	time.AfterFunc(s.secondDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.deleteKeys(ctx, keys)
	})
}

func (s *relationshipService) deleteKeys(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			zap.L().Warn("invalidate connections cache", zap.String("key", key), zap.Error(err))
		}
	}
}

func toRelationshipRespond(r *model.Relationship) *respond.RelationshipRespond {
	return &respond.RelationshipRespond{
		ID:                      r.ID,
		FromUserID:              r.FromUserID,
		ToUserID:                r.ToUserID,
		RelationshipType:        r.RelationshipType,
		ReverseRelationshipType: r.ReverseRelationshipType,
		Status:                  string(r.Status),
		IsBidirectional:         r.IsBidirectional,
	}
}

func toEditRequestRespond(r *model.RelationshipEditRequest, requesterName string) *respond.EditRequestRespond {
	return &respond.EditRequestRespond{
		ID:                      r.ID,
		RelationshipID:          r.RelationshipID,
		RequestingUserID:        r.RequestingUserID,
		RequestingUserName:      requesterName,
		TargetUserID:            r.TargetUserID,
		CurrentRelationshipType: r.CurrentRelationshipType,
		NewRelationshipType:     r.NewRelationshipType,
		FieldToChange:           string(r.FieldToChange),
		Status:                  string(r.Status),
	}
}
