// Package comments собирает дерево ответов из плоского списка комментариев.
package comments

import "github.com/BheruLalM/edustore-api/internal/domain"

const DefaultMaxDepth = 3

// Build строит лес комментариев глубиной не больше maxDepth уровней.
// flat должен быть отсортирован по created_at ASC: порядок среди соседей сохраняется.
// Ответы глубже maxDepth в выдачу не попадают (без ошибки), как и комментарии,
// чей родитель отсутствует в flat. У удалённых комментариев content всегда nil,
// даже если в строке он остался.
func Build(flat []domain.FlatComment, maxDepth int) []domain.CommentNode {
	if maxDepth < 1 || len(flat) == 0 {
		return []domain.CommentNode{}
	}

	children := make(map[domain.CommentID][]*domain.FlatComment, len(flat))
	var roots []*domain.FlatComment

	for i := range flat {
		c := &flat[i]
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	return attach(roots, children, 0, maxDepth)
}

func attach(level []*domain.FlatComment, children map[domain.CommentID][]*domain.FlatComment, depth, maxDepth int) []domain.CommentNode {
	if depth >= maxDepth {
		return []domain.CommentNode{}
	}
	nodes := make([]domain.CommentNode, 0, len(level))
	for _, c := range level {
		nodes = append(nodes, domain.CommentNode{
			ID:        c.ID,
			Content:   redact(c),
			IsDeleted: c.IsDeleted,
			CreatedAt: c.CreatedAt,
			Author:    c.Author,
			Replies:   attach(children[c.ID], children, depth+1, maxDepth),
		})
	}
	return nodes
}

func redact(c *domain.FlatComment) *string {
	if c.IsDeleted || c.Content == nil {
		return nil
	}
	s := *c.Content
	return &s
}
