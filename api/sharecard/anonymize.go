package sharecard

import "fmt"

// UserMapping is an insertion-ordered identity -> "User N" cache. It is
// threaded through a build call by reference so the same source identity
// always yields the same label, within one call and across calls when the
// caller keeps the mapping alive. Not safe for concurrent use; each
// document build owns its mapping.
type UserMapping struct {
	labels map[string]string
	order  []string
}

// NewUserMapping creates an empty anonymization mapping
func NewUserMapping() *UserMapping {
	return &UserMapping{
		labels: make(map[string]string),
	}
}

// Anonymize returns the stable "User N" label for an identity, assigning
// the next number on first encounter
func (m *UserMapping) Anonymize(identity string) string {
	if label, ok := m.labels[identity]; ok {
		return label
	}

	label := fmt.Sprintf("User %d", len(m.order)+1)
	m.labels[identity] = label
	m.order = append(m.order, identity)
	return label
}

// Len returns how many identities have been assigned labels
func (m *UserMapping) Len() int {
	return len(m.order)
}

// Identities returns the mapped identities in first-encounter order
func (m *UserMapping) Identities() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}
