package scheme

import (
	"fmt"
	"sort"

	"github.com/htloc2506/codingdesk/internal/model"
)

// Position locates a question inside the scheme outline.
type Position struct {
	ParentID         uint `json:"parent_id"`
	PositionInParent int  `json:"position_in_parent"`
}

// Outline maps question ids to their place in the scheme tree. The outline is
// authoritative: when it disagrees with the ParentID/PositionInParent stored
// on a question, the outline wins.
type Outline map[uint]Position

// Tree is the immutable-per-version shape of a project's coding scheme: a
// lookup table by question id and the depth-first traversal order used for
// navigation. The rendered, answer-annotated projection is rebuilt from it by
// Render and never owned here.
type Tree struct {
	questions []model.SchemeQuestion
	byID      map[uint]*model.SchemeQuestion
	order     []uint
	indexOf   map[uint]int
	children  map[uint][]uint
}

// NewTree builds the traversal structures for a fetched scheme.
func NewTree(questions []model.SchemeQuestion, outline Outline) (*Tree, error) {
	t := &Tree{
		questions: questions,
		byID:      make(map[uint]*model.SchemeQuestion, len(questions)),
		indexOf:   make(map[uint]int, len(questions)),
		children:  make(map[uint][]uint),
	}
	for i := range t.questions {
		q := &t.questions[i]
		if pos, ok := outline[q.ID]; ok {
			q.ParentID = pos.ParentID
			q.PositionInParent = pos.PositionInParent
		}
		if _, dup := t.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d in scheme", q.ID)
		}
		t.byID[q.ID] = q
	}
	for i := range t.questions {
		q := &t.questions[i]
		if q.ParentID != 0 {
			if _, ok := t.byID[q.ParentID]; !ok {
				return nil, fmt.Errorf("question %d references missing parent %d", q.ID, q.ParentID)
			}
		}
		t.children[q.ParentID] = append(t.children[q.ParentID], q.ID)
	}
	for parent := range t.children {
		ids := t.children[parent]
		sort.SliceStable(ids, func(i, j int) bool {
			return t.byID[ids[i]].PositionInParent < t.byID[ids[j]].PositionInParent
		})
	}
	t.walk(0)
	if len(t.order) != len(t.questions) {
		return nil, fmt.Errorf("scheme outline is cyclic or disconnected: reached %d of %d questions", len(t.order), len(t.questions))
	}
	return t, nil
}

func (t *Tree) walk(parentID uint) {
	for _, id := range t.children[parentID] {
		t.indexOf[id] = len(t.order)
		t.order = append(t.order, id)
		t.walk(id)
	}
}

// Question looks a question up by id.
func (t *Tree) Question(id uint) (*model.SchemeQuestion, bool) {
	q, ok := t.byID[id]
	return q, ok
}

// QuestionAt returns the question at a traversal index, nil when out of range.
func (t *Tree) QuestionAt(index int) *model.SchemeQuestion {
	if index < 0 || index >= len(t.order) {
		return nil
	}
	return t.byID[t.order[index]]
}

// IndexOf returns the traversal index of a question, -1 when unknown.
func (t *Tree) IndexOf(id uint) int {
	idx, ok := t.indexOf[id]
	if !ok {
		return -1
	}
	return idx
}

// Len is the number of questions in traversal order.
func (t *Tree) Len() int {
	return len(t.order)
}

// ChildIDs returns the scheme children of a question, ordered. Parent id 0
// lists the root questions.
func (t *Tree) ChildIDs(parentID uint) []uint {
	return t.children[parentID]
}

// RefreshQuestion swaps in a re-fetched copy of a single scheme node, keeping
// tree shape untouched. Used when a flag is raised or cleared server-side.
func (t *Tree) RefreshQuestion(q model.SchemeQuestion) error {
	existing, ok := t.byID[q.ID]
	if !ok {
		return fmt.Errorf("question %d is not part of this scheme", q.ID)
	}
	q.ParentID = existing.ParentID
	q.PositionInParent = existing.PositionInParent
	*existing = q
	return nil
}
