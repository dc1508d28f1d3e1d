package model

// RenderNode is one entry of the review output tree. Leaf nodes carry the
// old/new values for a single field; interior nodes group children under a
// title (facility, activity, source type, unit, ...). Ordering of Children
// is part of the contract: auditors compare rendered change lists across
// runs, so the same input must always produce the same tree.
type RenderNode struct {
	Title    string       `json:"title,omitempty"`
	Status   ChangeType   `json:"status,omitempty"`
	OldValue any          `json:"old_value,omitempty"`
	NewValue any          `json:"new_value,omitempty"`
	TextDiff string       `json:"text_diff,omitempty"`
	Children []RenderNode `json:"children,omitempty"`
}

// RenderTree is the full review: one node per visible top-level section, in
// fixed presentation order.
type RenderTree struct {
	Sections []RenderNode `json:"sections"`
}

// Empty reports whether the tree has no visible sections.
func (t *RenderTree) Empty() bool {
	return t == nil || len(t.Sections) == 0
}
