package domain

// Room is the per-room aggregate. It is not safe for concurrent use: the registry serializes
// access to each room.
type Room struct {
	id          string
	members     *Members
	adminId     string
	chatHistory []ChatMessage
	subtitle    *string
}

func NewRoom(id string, membersLimit int) *Room {
	return &Room{
		id:          id,
		members:     NewMembers(membersLimit),
		chatHistory: []ChatMessage{},
	}
}

func (r Room) Id() string {
	return r.id
}

func (r Room) Members() []Member {
	return r.members.AsList()
}

func (r Room) MemberConnIds() []string {
	return r.members.ConnIds()
}

func (r Room) Length() int {
	return r.members.Length()
}

func (r Room) IsEmpty() bool {
	return r.members.Length() == 0
}

func (r Room) GetMember(connId string) (Member, error) {
	member, _, err := r.members.GetById(connId)
	return member, err
}

func (r Room) HasMember(connId string) bool {
	_, err := r.GetMember(connId)
	return err == nil
}

func (r *Room) AddMember(member Member) error {
	return r.members.Add(member)
}

// RemoveMember removes the member. The admin pointer is left untouched; callers run
// ReassignAdmin afterwards when the removed member was the admin.
func (r *Room) RemoveMember(connId string) (Member, error) {
	return r.members.RemoveById(connId)
}

func (r Room) AdminId() string {
	return r.adminId
}

func (r Room) HasAdmin() bool {
	return r.adminId != ""
}

func (r Room) IsAdmin(connId string) bool {
	return connId != "" && r.adminId == connId
}

func (r *Room) SetAdmin(connId string) error {
	if !r.HasMember(connId) {
		return ErrMemberNotFound
	}

	r.adminId = connId
	return nil
}

// ReassignAdmin makes the earliest joined remaining member the admin.
// It returns false and clears the admin when the room is empty.
func (r *Room) ReassignAdmin() (Member, bool) {
	successor, ok := r.members.First()
	if !ok {
		r.adminId = ""
		return Member{}, false
	}

	r.adminId = successor.ConnId
	return successor, true
}

func (r *Room) AppendChat(msg ChatMessage) {
	r.chatHistory = append(r.chatHistory, msg)
}

func (r Room) ChatHistory() []ChatMessage {
	history := make([]ChatMessage, len(r.chatHistory))
	copy(history, r.chatHistory)
	return history
}

func (r *Room) SetSubtitle(subtitle *string) {
	if subtitle == nil {
		r.subtitle = nil
		return
	}

	s := *subtitle
	r.subtitle = &s
}

func (r Room) Subtitle() *string {
	return r.subtitle
}
