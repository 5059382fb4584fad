package scheme

import (
	"github.com/htloc2506/codingdesk/internal/answers"
	"github.com/htloc2506/codingdesk/internal/model"
)

// Node is one entry of the rendered scheme tree: the question annotated with
// the current actor's answered state. For category questions, Children holds
// one synthesized node per category the actor has selected on the parent
// category-choice question; those children come and go purely by
// recomputation as answers change.
type Node struct {
	QuestionID        uint         `json:"question_id"`
	Text              string       `json:"text"`
	QuestionType      int          `json:"question_type"`
	IsCategoryChild   bool         `json:"is_category_child,omitempty"`
	CategoryID        uint         `json:"category_id,omitempty"`
	Flags             []model.Flag `json:"flags"`
	IsAnswered        bool         `json:"is_answered"`
	CompletedProgress float64      `json:"completed_progress"`
	Children          []*Node      `json:"children,omitempty"`
}

// Render builds the annotated tree projection from the scheme and the current
// answer store. The projection owns nothing: it is rebuilt after every
// answer-affecting event, which is what makes the synthesized category
// children disappear when their category is deselected.
func Render(t *Tree, store *answers.Store) []*Node {
	return renderChildren(t, store, 0)
}

func renderChildren(t *Tree, store *answers.Store, parentID uint) []*Node {
	var nodes []*Node
	for _, id := range t.ChildIDs(parentID) {
		q := t.byID[id]
		node := &Node{
			QuestionID:   q.ID,
			Text:         q.Text,
			QuestionType: q.QuestionType,
			Flags:        flagsOf(q),
		}
		if q.IsCategoryQuestion {
			renderCategoryNode(t, store, q, node)
		} else {
			node.IsAnswered = store.IsAnswered(q.ID)
			if node.IsAnswered {
				node.CompletedProgress = 1
			}
			node.Children = renderChildren(t, store, q.ID)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func renderCategoryNode(t *Tree, store *answers.Store, q *model.SchemeQuestion, node *Node) {
	parent, ok := t.Question(q.ParentID)
	if !ok {
		return
	}
	selected := store.SelectedCategories(parent)
	node.IsAnswered = store.IsCategoryAnswered(q.ID, selected)
	node.CompletedProgress = store.CategoryProgress(q.ID, selected)
	for _, cat := range selected {
		rec, hydrated := store.Record(q.ID, cat.ID)
		child := &Node{
			QuestionID:      q.ID,
			Text:            cat.Text,
			QuestionType:    q.QuestionType,
			IsCategoryChild: true,
			CategoryID:      cat.ID,
			Flags:           []model.Flag{},
			IsAnswered:      hydrated && len(rec.Answers) > 0,
		}
		if child.IsAnswered {
			child.CompletedProgress = 1
		}
		node.Children = append(node.Children, child)
	}
}

func flagsOf(q *model.SchemeQuestion) []model.Flag {
	if q.Flags == nil {
		return []model.Flag{}
	}
	return q.Flags
}
