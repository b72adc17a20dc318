package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SidS12345/Family-Connections/internal/dao/db/dbtest"
	"github.com/SidS12345/Family-Connections/internal/dao/db/repository"
	"github.com/SidS12345/Family-Connections/internal/dto/respond"
	"github.com/SidS12345/Family-Connections/internal/model"
)

func link(t *testing.T, repos *repository.Repositories, from, to uint, label string, status model.Status) {
	t.Helper()
	require.NoError(t, repos.Relationship.Create(&model.Relationship{
		FromUserID: from, ToUserID: to, RelationshipType: label, Status: status,
	}))
}

func collectIDs(n *respond.TreeNode, seen map[uint]int) {
	seen[n.ID]++
	for _, c := range n.Children {
		collectIDs(c.Subtree, seen)
	}
}

func TestBuildTreeMissingRoot(t *testing.T) {
	svc := NewTreeService(dbtest.New(t))
	node, err := svc.BuildTree(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, node)
}

func TestBuildTreeFollowsAllStatuses(t *testing.T) {
	repos := dbtest.New(t)
	a := dbtest.CreateUser(t, repos, "A", "a@example.com")
	b := dbtest.CreateUser(t, repos, "B", "b@example.com")
	c := dbtest.CreateUser(t, repos, "C", "c@example.com")
	d := dbtest.CreateUser(t, repos, "D", "d@example.com")
	link(t, repos, a.ID, b.ID, "father", model.StatusApproved)
	link(t, repos, a.ID, c.ID, "uncle", model.StatusPending)
	link(t, repos, b.ID, d.ID, "sister", model.StatusDeclined)

	node, err := NewTreeService(repos).BuildTree(context.Background(), a.ID)
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, "A", node.Name)
	require.Len(t, node.Children, 2)
	assert.Equal(t, "father", node.Children[0].RelationshipLabel)
	assert.Equal(t, b.ID, node.Children[0].Subtree.ID)
	assert.Equal(t, "uncle", node.Children[1].RelationshipLabel)
	require.Len(t, node.Children[0].Subtree.Children, 1)
	assert.Equal(t, d.ID, node.Children[0].Subtree.Children[0].Subtree.ID)
	assert.Empty(t, node.Children[1].Subtree.Children)
}

func TestBuildTreeTerminatesOnCycles(t *testing.T) {
	repos := dbtest.New(t)
	a := dbtest.CreateUser(t, repos, "A", "a@example.com")
	b := dbtest.CreateUser(t, repos, "B", "b@example.com")
	c := dbtest.CreateUser(t, repos, "C", "c@example.com")
	link(t, repos, a.ID, b.ID, "father", model.StatusApproved)
	link(t, repos, b.ID, c.ID, "father", model.StatusApproved)
	link(t, repos, c.ID, a.ID, "father", model.StatusApproved)
	// second path to C: first discovery (via B) wins
	link(t, repos, a.ID, c.ID, "grandfather", model.StatusApproved)
	link(t, repos, b.ID, b.ID, "self", model.StatusPending)

	node, err := NewTreeService(repos).BuildTree(context.Background(), a.ID)
	require.NoError(t, err)

	seen := map[uint]int{}
	collectIDs(node, seen)
	assert.Equal(t, map[uint]int{a.ID: 1, b.ID: 1, c.ID: 1}, seen)

	require.Len(t, node.Children, 1)
	bNode := node.Children[0].Subtree
	require.Len(t, bNode.Children, 1)
	assert.Equal(t, c.ID, bNode.Children[0].Subtree.ID)
	assert.Empty(t, bNode.Children[0].Subtree.Children)
}
