package forms

import "sort"

// SectionsDiff is the explicit change-set a schema-editing session
// accumulates: full copies of touched sections plus the ids of deleted
// ones. Saving persists only this diff.
type SectionsDiff struct {
	Modified   []Section `json:"modified"`
	DeletedIDs []int64   `json:"deletedIds"`
}

func (d SectionsDiff) Empty() bool {
	return len(d.Modified) == 0 && len(d.DeletedIDs) == 0
}

// EditorSession holds one admin's in-flight edits over a flow's
// sections. It is passed by reference to whatever needs it; dirty
// tracking is part of the value, not ambient state.
type EditorSession struct {
	sections []Section
	modified map[int64]struct{}
	deleted  map[int64]struct{}
}

func NewEditorSession(sections []Section) *EditorSession {
	s := &EditorSession{}
	s.Reset(sections)
	return s
}

// Reset discards all pending edits and reloads the baseline.
func (s *EditorSession) Reset(sections []Section) {
	s.sections = append([]Section(nil), sections...)
	s.modified = make(map[int64]struct{})
	s.deleted = make(map[int64]struct{})
}

func (s *EditorSession) Sections() []Section {
	return s.sections
}

func (s *EditorSession) Dirty() bool {
	return len(s.modified) > 0 || len(s.deleted) > 0
}

// UpsertSection replaces or appends a section and marks it modified.
func (s *EditorSession) UpsertSection(sec Section) {
	for i := range s.sections {
		if s.sections[i].ID == sec.ID {
			s.sections[i] = sec
			s.markModified(sec.ID)
			return
		}
	}
	s.sections = append(s.sections, sec)
	s.markModified(sec.ID)
}

// DeleteSection removes a section from the working set. A section that
// was only ever added in this session just drops out of the modified
// set; a pre-existing one lands in the deleted set.
func (s *EditorSession) DeleteSection(id int64) {
	for i := range s.sections {
		if s.sections[i].ID == id {
			s.sections = append(s.sections[:i], s.sections[i+1:]...)
			break
		}
	}
	delete(s.modified, id)
	s.deleted[id] = struct{}{}
}

func (s *EditorSession) markModified(id int64) {
	delete(s.deleted, id)
	s.modified[id] = struct{}{}
}

func (s *EditorSession) section(id int64) *Section {
	for i := range s.sections {
		if s.sections[i].ID == id {
			return &s.sections[i]
		}
	}
	return nil
}

// AddStep appends a step to a section and marks the section modified.
func (s *EditorSession) AddStep(sectionID int64, step Step) bool {
	sec := s.section(sectionID)
	if sec == nil {
		return false
	}
	sec.Steps = append(sec.Steps, step)
	s.markModified(sectionID)
	return true
}

// RemoveStep drops a step by id.
func (s *EditorSession) RemoveStep(sectionID, stepID int64) bool {
	sec := s.section(sectionID)
	if sec == nil {
		return false
	}
	for i := range sec.Steps {
		if sec.Steps[i].ID == stepID {
			sec.Steps = append(sec.Steps[:i], sec.Steps[i+1:]...)
			s.markModified(sectionID)
			return true
		}
	}
	return false
}

// MoveStep reorders a step to newIndex within its section.
func (s *EditorSession) MoveStep(sectionID, stepID int64, newIndex int) bool {
	sec := s.section(sectionID)
	if sec == nil {
		return false
	}
	from := -1
	for i := range sec.Steps {
		if sec.Steps[i].ID == stepID {
			from = i
			break
		}
	}
	if from < 0 || newIndex < 0 || newIndex >= len(sec.Steps) {
		return false
	}
	step := sec.Steps[from]
	sec.Steps = append(sec.Steps[:from], sec.Steps[from+1:]...)
	sec.Steps = append(sec.Steps[:newIndex], append([]Step{step}, sec.Steps[newIndex:]...)...)
	for i := range sec.Steps {
		sec.Steps[i].Order = i
	}
	s.markModified(sectionID)
	return true
}

// AddQuestion appends a question to a step.
func (s *EditorSession) AddQuestion(sectionID, stepID int64, q Question) bool {
	sec := s.section(sectionID)
	if sec == nil {
		return false
	}
	for i := range sec.Steps {
		if sec.Steps[i].ID == stepID {
			sec.Steps[i].Questions = append(sec.Steps[i].Questions, q)
			s.markModified(sectionID)
			return true
		}
	}
	return false
}

// RemoveQuestion drops a question by alias.
func (s *EditorSession) RemoveQuestion(sectionID, stepID int64, alias string) bool {
	sec := s.section(sectionID)
	if sec == nil {
		return false
	}
	for i := range sec.Steps {
		if sec.Steps[i].ID != stepID {
			continue
		}
		qs := sec.Steps[i].Questions
		for j := range qs {
			if qs[j].Alias == alias {
				sec.Steps[i].Questions = append(qs[:j], qs[j+1:]...)
				s.markModified(sectionID)
				return true
			}
		}
	}
	return false
}

// Changeset snapshots the pending diff for saving.
func (s *EditorSession) Changeset() SectionsDiff {
	diff := SectionsDiff{}
	for id := range s.modified {
		if sec := s.section(id); sec != nil {
			diff.Modified = append(diff.Modified, *sec)
		}
	}
	for id := range s.deleted {
		diff.DeletedIDs = append(diff.DeletedIDs, id)
	}
	sort.Slice(diff.Modified, func(i, j int) bool { return diff.Modified[i].ID < diff.Modified[j].ID })
	sort.Slice(diff.DeletedIDs, func(i, j int) bool { return diff.DeletedIDs[i] < diff.DeletedIDs[j] })
	return diff
}

// ApplySectionsDiff merges a change-set over the persisted section
// list: deleted ids drop out, modified sections shallow-merge over
// their current row, and modified sections with unknown ids append as
// new. The caller writes the result back as one document.
func ApplySectionsDiff(existing []Section, diff SectionsDiff) []Section {
	deleted := make(map[int64]struct{}, len(diff.DeletedIDs))
	for _, id := range diff.DeletedIDs {
		deleted[id] = struct{}{}
	}
	incoming := make(map[int64]Section, len(diff.Modified))
	for _, sec := range diff.Modified {
		incoming[sec.ID] = sec
	}

	out := make([]Section, 0, len(existing)+len(diff.Modified))
	seen := make(map[int64]struct{}, len(existing))
	for _, sec := range existing {
		if _, gone := deleted[sec.ID]; gone {
			continue
		}
		seen[sec.ID] = struct{}{}
		if mod, ok := incoming[sec.ID]; ok {
			out = append(out, mergeSection(sec, mod))
		} else {
			out = append(out, sec)
		}
	}
	for _, sec := range diff.Modified {
		if _, gone := deleted[sec.ID]; gone {
			continue
		}
		if _, ok := seen[sec.ID]; !ok {
			out = append(out, sec)
		}
	}
	return out
}

// mergeSection shallow-merges an incoming modified section over the
// existing one. Zero values mean "field not touched", so a diff cannot
// clear a name or color or move a section to order 0; an editor that
// needs to blank a field sends a replacement value instead.
// ConditionalDisplay is the one exception and always takes the
// incoming value: omitting it clears the stored rule, otherwise a
// stale gate would survive the merge.
func mergeSection(existing, incoming Section) Section {
	merged := existing
	if incoming.Name != "" {
		merged.Name = incoming.Name
	}
	if incoming.Color != "" {
		merged.Color = incoming.Color
	}
	if incoming.Order != 0 {
		merged.Order = incoming.Order
	}
	if incoming.Steps != nil {
		merged.Steps = incoming.Steps
	}
	merged.ConditionalDisplay = incoming.ConditionalDisplay
	return merged
}
