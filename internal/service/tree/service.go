// Package tree expands a user's outgoing relationships into a nested tree.
package tree

import (
	"context"

	"github.com/SidS12345/Family-Connections/internal/dao/db/repository"
	"github.com/SidS12345/Family-Connections/internal/dto/respond"
	"github.com/SidS12345/Family-Connections/internal/service/common"
	"github.com/SidS12345/Family-Connections/pkg/errorx"
)

type treeService struct {
	repos *repository.Repositories
}

func NewTreeService(repos *repository.Repositories) *treeService {
	return &treeService{repos: repos}
}

// BuildTree walks outgoing edges of every status depth-first from rootID.
// Each user appears at most once: an edge to an already visited user is
// dropped, so a user reachable by two paths sits under the first one found.
// It returns nil, nil when the root does not exist.
func (s *treeService) BuildTree(ctx context.Context, rootID uint) (*respond.TreeNode, error) {
	return s.expand(ctx, rootID, make(map[uint]bool))
}

func (s *treeService) expand(ctx context.Context, userID uint, visited map[uint]bool) (*respond.TreeNode, error) {
	if visited[userID] {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := s.repos.User.FindByID(userID)
	if errorx.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, common.DBError(err, "")
	}
	visited[userID] = true

	rels, err := s.repos.Relationship.FindOutgoing(userID)
	if err != nil {
		return nil, common.DBError(err, "")
	}

	node := &respond.TreeNode{ID: user.ID, Name: user.Name, Children: make([]respond.TreeEdge, 0, len(rels))}
	for _, rel := range rels {
		sub, err := s.expand(ctx, rel.ToUserID, visited)
		if err != nil {
			return nil, err
		}
		if sub == nil {
			continue
		}
		node.Children = append(node.Children, respond.TreeEdge{RelationshipLabel: rel.RelationshipType, Subtree: sub})
	}
	return node, nil
}
