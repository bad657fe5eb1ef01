package domain

import (
	"errors"
)

var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("member already exists")
	ErrMembersLimitReached = errors.New("members limit reached")
)

type Member struct {
	ConnId string `json:"-"`
	Name   string `json:"name"`
}

// Members keeps members in insertion order. The order decides admin succession.
type Members struct {
	list  []Member
	limit int
}

// NewMembers returns an empty list. limit <= 0 means unlimited.
func NewMembers(limit int) *Members {
	return &Members{
		list:  []Member{},
		limit: limit,
	}
}

func (m Members) Length() int {
	return len(m.list)
}

func (m Members) AsList() []Member {
	list := make([]Member, len(m.list))
	copy(list, m.list)
	return list
}

func (m Members) ConnIds() []string {
	ids := make([]string, 0, len(m.list))
	for _, member := range m.list {
		ids = append(ids, member.ConnId)
	}

	return ids
}

func (m Members) GetById(connId string) (Member, int, error) {
	for index, member := range m.list {
		if member.ConnId == connId {
			return member, index, nil
		}
	}

	return Member{}, 0, ErrMemberNotFound
}

// First returns the earliest inserted member still present.
func (m Members) First() (Member, bool) {
	if len(m.list) == 0 {
		return Member{}, false
	}

	return m.list[0], true
}

func (m *Members) Add(member Member) error {
	if _, _, err := m.GetById(member.ConnId); err == nil {
		return ErrMemberAlreadyExists
	}

	if m.limit > 0 && m.Length() >= m.limit {
		return ErrMembersLimitReached
	}

	m.list = append(m.list, member)
	return nil
}

func (m *Members) RemoveById(connId string) (Member, error) {
	member, index, err := m.GetById(connId)
	if err != nil {
		return Member{}, err
	}

	m.list = append(m.list[:index], m.list[index+1:]...)
	return member, nil
}
