package respond

// TreeNode is one user in a relationship tree.
type TreeNode struct {
	ID       uint       `json:"id"`
	Name     string     `json:"name"`
	Children []TreeEdge `json:"children"`
}

// TreeEdge links a parent node to a subtree through one outgoing relationship.
type TreeEdge struct {
	RelationshipLabel string    `json:"relationship_label"`
	Subtree           *TreeNode `json:"subtree"`
}
