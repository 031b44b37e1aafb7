package mirror

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type walkNode struct {
	data      *object.Commit
	nparent   int
	nextvisit int
}

type walkBuilder struct {
	seen  map[plumbing.Hash]empty
	stack []*walkNode
}

func newWalkBuilder() *walkBuilder {
	return &walkBuilder{
		stack: make([]*walkNode, 0),
		seen:  make(map[plumbing.Hash]empty),
	}
}

func (wb *walkBuilder) add(v *object.Commit) {
	hash := v.Hash
	if _, seen := wb.seen[hash]; seen {
		return
	}

	wb.seen[hash] = empty{}
	wb.stack = append(wb.stack, &walkNode{
		data:      v,
		nparent:   v.NumParents(),
		nextvisit: 0,
	})
}

func (wb *walkBuilder) pop() error {
	if len(wb.stack) == 0 {
		return fmt.Errorf("failed to pop empty stack")
	}

	wb.stack = wb.stack[:len(wb.stack)-1]

	return nil
}

func (wb *walkBuilder) top() *walkNode {
	if len(wb.stack) == 0 {
		return nil
	}

	return wb.stack[len(wb.stack)-1]
}

// historyPath collects every commit reachable from head into a deterministic
// slice with parents always ahead of their children and head last. Parents
// are visited first to last, so the leading commits match a first-parent
// history. A history rewrite can walk the slice front to back and know each
// commit's parents were already decided.
func historyPath(ctx context.Context, head *object.Commit) ([]*object.Commit, error) {
	result := make([]*object.Commit, 0)
	wb := newWalkBuilder()

	wb.add(head)

addloop:
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		current := wb.top()

		if current == nil {
			break addloop
		}

		if current.nextvisit == current.nparent {
			result = append(result, current.data)
			if err := wb.pop(); err != nil {
				return nil, err
			}
			continue
		}

		p, err := current.data.Parent(current.nextvisit)
		if err != nil {
			return nil, fmt.Errorf(
				"cannot get parent %d for %s: %w",
				current.nextvisit,
				current.data.Hash.String(),
				err)
		}
		current.nextvisit += 1
		wb.add(p)
	}

	return result, nil
}
