package team

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/wrestling-roster/internal/domain/member"
)

var (
	ErrKindMismatch   = member.ErrKindMismatch
	ErrMemberNotFound = errors.New("member not on team")
)

// Team is a named roster whose members are partitioned by kind. Partition and
// member order is insertion order and drives display and save order.
//
// A Team is not safe for concurrent use.
type Team struct {
	Name     string
	FilePath string

	kinds   []member.Kind
	members map[member.Kind][]*member.Member
}

func New(name string) *Team {
	return &Team{
		Name:    name,
		members: make(map[member.Kind][]*member.Member),
	}
}

func (t *Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	return nil
}

// AddMember appends m to the kind partition, creating it on first use.
func (t *Team) AddMember(kind member.Kind, m *member.Member) error {
	if m == nil {
		return fmt.Errorf("%w: member is nil", member.ErrInvalidMember)
	}
	if m.Kind() != kind {
		return fmt.Errorf("%w: partition=%s member=%s", ErrKindMismatch, kind, m.Kind())
	}
	if t.members == nil {
		t.members = make(map[member.Kind][]*member.Member)
	}
	if _, ok := t.members[kind]; !ok {
		t.kinds = append(t.kinds, kind)
	}
	t.members[kind] = append(t.members[kind], m)
	return nil
}

// RemoveMember drops the first occurrence of m from the kind partition. It
// reports whether anything was removed; absent kinds or members are a no-op.
func (t *Team) RemoveMember(kind member.Kind, m *member.Member) bool {
	partition := t.members[kind]
	idx := slices.Index(partition, m)
	if idx < 0 {
		return false
	}
	t.members[kind] = slices.Delete(partition, idx, idx+1)
	return true
}

// Members returns the live partition for kind. Callers must not assume a copy.
func (t *Team) Members(kind member.Kind) []*member.Member {
	return t.members[kind]
}

// Kinds lists the partitions in the order they were created.
func (t *Team) Kinds() []member.Kind {
	return slices.Clone(t.kinds)
}

// All returns every member, partition by partition.
func (t *Team) All() []*member.Member {
	out := make([]*member.Member, 0, t.TotalMembers())
	for _, kind := range t.kinds {
		out = append(out, t.members[kind]...)
	}
	return out
}

func (t *Team) FindByID(id string) (*member.Member, bool) {
	if id == "" {
		return nil, false
	}
	for _, kind := range t.kinds {
		for _, m := range t.members[kind] {
			if m.ID == id {
				return m, true
			}
		}
	}
	return nil, false
}

// ChangeKind moves m into the newKind partition. The shared base fields are
// copied and the kind specific fields reset to defaults; the returned member
// replaces m, which is no longer on the team.
func (t *Team) ChangeKind(m *member.Member, newKind member.Kind) (*member.Member, error) {
	oldKind := m.Kind()
	if !slices.Contains(t.members[oldKind], m) {
		return nil, ErrMemberNotFound
	}
	if oldKind == newKind {
		return m, nil
	}

	replacement, err := member.NewDefault(newKind, m.Base)
	if err != nil {
		return nil, err
	}

	t.RemoveMember(oldKind, m)
	if err := t.AddMember(newKind, replacement); err != nil {
		return nil, err
	}
	return replacement, nil
}

// Clone deep-copies the team, keeping partition and member order.
func (t *Team) Clone() *Team {
	out := New(t.Name)
	out.FilePath = t.FilePath
	for _, kind := range t.kinds {
		for _, m := range t.members[kind] {
			_ = out.AddMember(kind, m.Clone())
		}
	}
	return out
}
