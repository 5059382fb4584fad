package navigator

import (
	"github.com/htloc2506/codingdesk/internal/answers"
	"github.com/htloc2506/codingdesk/internal/model"
	"github.com/htloc2506/codingdesk/internal/scheme"
)

// Result is what a navigation step resolves to. Categories is nil unless the
// resolved question is a category question with at least one category
// selected on its parent, in which case it lists the selected categories in
// choice order and SelectedCategoryID defaults to the first of them.
type Result struct {
	Question           *model.SchemeQuestion
	Index              int
	SelectedCategory   int
	SelectedCategoryID uint
	Categories         []model.AnswerChoice
}

// Next resolves one step forward in traversal order. Stepping past the end is
// a no-op: the current question is returned unchanged.
func Next(t *scheme.Tree, store *answers.Store, currentIndex int) Result {
	return step(t, store, currentIndex, currentIndex+1)
}

// Previous resolves one step backward, with the same no-op rule at the front.
func Previous(t *scheme.Tree, store *answers.Store, currentIndex int) Result {
	return step(t, store, currentIndex, currentIndex-1)
}

// Jump resolves directly to a requested traversal index.
func Jump(t *scheme.Tree, store *answers.Store, currentIndex, requestedIndex int) Result {
	return step(t, store, currentIndex, requestedIndex)
}

// SelectInNav resolves a question picked directly from the rendered tree,
// applying the same category rules as offset navigation. An optional
// categoryID pins the selected category when the user clicked a synthesized
// category child; 0 keeps the first-selected default.
func SelectInNav(t *scheme.Tree, store *answers.Store, currentIndex int, questionID, categoryID uint) Result {
	idx := t.IndexOf(questionID)
	res := step(t, store, currentIndex, idx)
	if categoryID != 0 && res.Categories != nil {
		for ord, cat := range res.Categories {
			if cat.ID == categoryID {
				res.SelectedCategory = ord
				res.SelectedCategoryID = cat.ID
				break
			}
		}
	}
	return res
}

func step(t *scheme.Tree, store *answers.Store, currentIndex, targetIndex int) Result {
	if targetIndex < 0 || targetIndex >= t.Len() {
		targetIndex = currentIndex
	}
	return resolve(t, store, targetIndex)
}

// resolve applies category branching to a landed-on index. Landing on a
// category question with nothing selected on its category-choice parent falls
// back to the parent question itself.
func resolve(t *scheme.Tree, store *answers.Store, index int) Result {
	q := t.QuestionAt(index)
	if q == nil {
		return Result{Index: index}
	}
	if !q.IsCategoryQuestion {
		return Result{Question: q, Index: index}
	}
	parent, ok := t.Question(q.ParentID)
	if !ok {
		return Result{Question: q, Index: index}
	}
	selected := store.SelectedCategories(parent)
	if len(selected) == 0 {
		return Result{Question: parent, Index: t.IndexOf(parent.ID)}
	}
	return Result{
		Question:           q,
		Index:              index,
		SelectedCategory:   0,
		SelectedCategoryID: selected[0].ID,
		Categories:         selected,
	}
}
