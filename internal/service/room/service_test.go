package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sharetube/watchroom/internal/domain"
	connInmemory "github.com/sharetube/watchroom/internal/repository/connection/inmemory"
	roomInmemory "github.com/sharetube/watchroom/internal/repository/room/inmemory"
	codeInmemory "github.com/sharetube/watchroom/internal/repository/roomcode/inmemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errQueueFull = errors.New("queue full")

type fakeConn struct {
	id       string
	mu       sync.Mutex
	messages []*domain.Message
	fail     bool
	closed   bool
}

func (c *fakeConn) Id() string {
	return c.id
}

func (c *fakeConn) Send(msg *domain.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fail {
		return errQueueFull
	}

	c.messages = append(c.messages, msg)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	return nil
}

func (c *fakeConn) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	types := make([]string, 0, len(c.messages))
	for _, msg := range c.messages {
		types = append(types, msg.Type)
	}

	return types
}

func (c *fakeConn) ofType(messageType string) []*domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	var res []*domain.Message
	for _, msg := range c.messages {
		if msg.Type == messageType {
			res = append(res, msg)
		}
	}

	return res
}

func (c *fakeConn) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = nil
}

func chatTexts(msgs []*domain.Message) []string {
	texts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		texts = append(texts, msg.Payload.(domain.ChatMessage).Text)
	}

	return texts
}

func memberNames(msg *domain.Message) []string {
	members := msg.Payload.([]domain.Member)
	names := make([]string, 0, len(members))
	for _, member := range members {
		names = append(names, member.Name)
	}

	return names
}

type testEnv struct {
	service  *service
	roomRepo interface{ Exists(string) bool }
	ctx      context.Context
}

func newTestEnv(t *testing.T, cfg Config) *testEnv {
	t.Helper()
	logger := slog.Default()
	roomRepo := roomInmemory.NewRepo(0, logger)
	if cfg.RoomCodeTTL == 0 {
		cfg.RoomCodeTTL = time.Hour
	}

	s := NewService(roomRepo, connInmemory.NewRepo(logger), codeInmemory.NewRepo(logger), logger, &cfg)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	return &testEnv{
		service:  s,
		roomRepo: roomRepo,
		ctx:      context.Background(),
	}
}

func (e *testEnv) connect(t *testing.T, id string) *fakeConn {
	t.Helper()
	conn := &fakeConn{id: id}
	require.NoError(t, e.service.Connect(e.ctx, conn))
	return conn
}

func (e *testEnv) join(t *testing.T, conn *fakeConn, roomId, name string) {
	t.Helper()
	require.NoError(t, e.service.JoinRoom(e.ctx, &JoinRoomParams{
		ConnId: conn.id,
		RoomId: roomId,
		Name:   name,
	}))
}

func TestJoinChatDisconnectScenario(t *testing.T) {
	e := newTestEnv(t, Config{})
	a := e.connect(t, "a")
	b := e.connect(t, "b")

	e.join(t, a, "abc123", "A")
	assert.Equal(t, []string{domain.EventChatHistory, domain.EventAdminStatus, domain.EventUsersUpdated}, a.types())
	assert.Empty(t, a.ofType(domain.EventChatHistory)[0].Payload)
	assert.Equal(t, AdminStatus{IsAdminUser: true}, a.ofType(domain.EventAdminStatus)[0].Payload)
	a.reset()

	e.join(t, b, "abc123", "B")
	assert.Equal(t, []string{domain.EventChatHistory, domain.EventAdminStatus, domain.EventUsersUpdated}, b.types())
	assert.Empty(t, b.ofType(domain.EventChatHistory)[0].Payload)
	assert.Equal(t, AdminStatus{IsAdminUser: false}, b.ofType(domain.EventAdminStatus)[0].Payload)
	assert.Equal(t, []string{"A", "B"}, memberNames(b.ofType(domain.EventUsersUpdated)[0]))

	assert.Equal(t, []string{"B joined the room"}, chatTexts(a.ofType(domain.EventChatMessage)))
	assert.Equal(t, []string{"A", "B"}, memberNames(a.ofType(domain.EventUsersUpdated)[0]))
	a.reset()
	b.reset()

	require.NoError(t, e.service.PostMessage(e.ctx, &PostMessageParams{ConnId: "a", RoomId: "abc123", Text: "hi"}))
	for _, conn := range []*fakeConn{a, b} {
		msgs := conn.ofType(domain.EventChatMessage)
		require.Len(t, msgs, 1)
		chatMessage := msgs[0].Payload.(domain.ChatMessage)
		assert.Equal(t, "A", chatMessage.SpeakerName)
		assert.Equal(t, "hi", chatMessage.Text)
		assert.False(t, chatMessage.IsSystemMessage)
	}
	b.reset()

	e.service.Disconnect(e.ctx, "a")
	assert.Equal(t, []string{
		domain.EventChatMessage,
		domain.EventAdminStatus,
		domain.EventChatMessage,
		domain.EventUsersUpdated,
	}, b.types())
	assert.Equal(t, []string{"A left the room", "B is now the room admin"}, chatTexts(b.ofType(domain.EventChatMessage)))
	assert.Equal(t, AdminStatus{IsAdminUser: true}, b.ofType(domain.EventAdminStatus)[0].Payload)
	assert.Equal(t, []string{"B"}, memberNames(b.ofType(domain.EventUsersUpdated)[0]))

	e.service.Disconnect(e.ctx, "b")
	assert.False(t, e.roomRepo.Exists("abc123"))
}

func TestLateJoinerReceivesHistoryAndSubtitle(t *testing.T) {
	e := newTestEnv(t, Config{})
	a := e.connect(t, "a")
	b := e.connect(t, "b")
	c := e.connect(t, "c")

	e.join(t, a, "room1", "A")
	e.join(t, b, "room1", "B")
	require.NoError(t, e.service.PostMessage(e.ctx, &PostMessageParams{ConnId: "a", RoomId: "room1", Text: "first"}))
	require.NoError(t, e.service.PostMessage(e.ctx, &PostMessageParams{ConnId: "b", RoomId: "room1", Text: "second"}))

	subtitle := "english.vtt"
	b.reset()
	require.NoError(t, e.service.SetSubtitle(e.ctx, &SetSubtitleParams{ConnId: "a", RoomId: "room1", Subtitle: &subtitle}))
	assert.Empty(t, a.ofType(domain.EventSubtitleChange))
	require.Len(t, b.ofType(domain.EventSubtitleChange), 1)
	assert.Equal(t, "english.vtt", *b.ofType(domain.EventSubtitleChange)[0].Payload.(SubtitleState).Subtitle)

	e.join(t, c, "room1", "C")
	assert.Equal(t, []string{
		domain.EventChatHistory,
		domain.EventSubtitleChange,
		domain.EventAdminStatus,
		domain.EventUsersUpdated,
	}, c.types())

	history := c.ofType(domain.EventChatHistory)[0].Payload.([]domain.ChatMessage)
	texts := make([]string, 0, len(history))
	for _, msg := range history {
		texts = append(texts, msg.Text)
	}
	assert.Equal(t, []string{"B joined the room", "first", "second"}, texts)
	assert.Equal(t, "english.vtt", *c.ofType(domain.EventSubtitleChange)[0].Payload.(SubtitleState).Subtitle)
}

func TestPlaybackActionRelay(t *testing.T) {
	e := newTestEnv(t, Config{})
	a := e.connect(t, "a")
	b := e.connect(t, "b")
	e.join(t, a, "room1", "A")
	e.join(t, b, "room1", "B")
	a.reset()
	b.reset()

	seekTime := 42.5
	require.NoError(t, e.service.PlaybackAction(e.ctx, &PlaybackActionParams{
		ConnId: "a",
		RoomId: "room1",
		Action: domain.PlaybackActionSeek,
		Time:   &seekTime,
	}))
	require.Len(t, b.ofType(domain.EventVideoAction), 1)
	action := b.ofType(domain.EventVideoAction)[0].Payload.(VideoAction)
	assert.Equal(t, domain.PlaybackActionSeek, action.Action)
	assert.Equal(t, 42.5, *action.Time)
	assert.Empty(t, a.types())

	err := e.service.PlaybackAction(e.ctx, &PlaybackActionParams{ConnId: "a", RoomId: "room1", Action: domain.PlaybackActionSeek})
	assert.ErrorIs(t, err, ErrValidation)
	err = e.service.PlaybackAction(e.ctx, &PlaybackActionParams{ConnId: "a", RoomId: "room1", Action: "rewind"})
	assert.ErrorIs(t, err, ErrValidation)

	outsider := e.connect(t, "x")
	err = e.service.PlaybackAction(e.ctx, &PlaybackActionParams{ConnId: outsider.id, RoomId: "room1", Action: domain.PlaybackActionPlay})
	assert.ErrorIs(t, err, ErrNotInRoom)
	assert.Len(t, b.ofType(domain.EventVideoAction), 1)
}

func TestRequestChange(t *testing.T) {
	e := newTestEnv(t, Config{})
	a := e.connect(t, "a")
	b := e.connect(t, "b")
	e.join(t, a, "room1", "A")
	e.join(t, b, "room1", "B")
	a.reset()
	b.reset()

	require.NoError(t, e.service.RequestChange(e.ctx, &RequestChangeParams{ConnId: "b", RoomId: "room1", Name: "Bee"}))
	require.Len(t, a.ofType(domain.EventChangeRequest), 1)
	assert.Equal(t, ChangeRequest{From: "Bee", RequesterId: "b"}, a.ofType(domain.EventChangeRequest)[0].Payload)

	require.NoError(t, e.service.RequestChange(e.ctx, &RequestChangeParams{ConnId: "b", RoomId: "room1"}))
	assert.Equal(t, ChangeRequest{From: "B", RequesterId: "b"}, a.ofType(domain.EventChangeRequest)[1].Payload)

	// the admin asking itself is dropped
	require.NoError(t, e.service.RequestChange(e.ctx, &RequestChangeParams{ConnId: "a", RoomId: "room1", Name: "A"}))
	assert.Len(t, a.ofType(domain.EventChangeRequest), 2)
	assert.Empty(t, b.types())
}

func TestGrantAndDeny(t *testing.T) {
	e := newTestEnv(t, Config{})
	a := e.connect(t, "a")
	x := e.connect(t, "x")
	y := e.connect(t, "y")
	e.join(t, a, "room1", "A")
	e.join(t, x, "room1", "X")
	e.join(t, y, "room1", "Y")
	y.reset()

	// non-admin X can still grant
	require.NoError(t, e.service.GrantChange(e.ctx, &GrantChangeParams{ConnId: "x", RoomId: "room1", RequesterId: "y"}))
	assert.Equal(t, []string{domain.EventChangeGranted}, y.types())

	require.NoError(t, e.service.DenyRequest(e.ctx, &DenyRequestParams{ConnId: "a", RoomId: "room1", UserId: "y"}))
	assert.Equal(t, []string{domain.EventChangeGranted, domain.EventRequestDenied}, y.types())

	// target gone: no effect, no error
	require.NoError(t, e.service.GrantChange(e.ctx, &GrantChangeParams{ConnId: "a", RoomId: "room1", RequesterId: "gone"}))

	// granting does not move the admin
	a.reset()
	e.service.Disconnect(e.ctx, "x")
	assert.Empty(t, a.ofType(domain.EventAdminStatus))
}

func TestStrictAccessControl(t *testing.T) {
	e := newTestEnv(t, Config{StrictAccessControl: true})
	a := e.connect(t, "a")
	x := e.connect(t, "x")
	y := e.connect(t, "y")
	e.join(t, a, "room1", "A")
	e.join(t, x, "room1", "X")
	e.join(t, y, "room1", "Y")
	y.reset()

	err := e.service.GrantChange(e.ctx, &GrantChangeParams{ConnId: "x", RoomId: "room1", RequesterId: "y"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	err = e.service.DenyRequest(e.ctx, &DenyRequestParams{ConnId: "x", RoomId: "room1", UserId: "y"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Empty(t, y.types())

	require.NoError(t, e.service.GrantChange(e.ctx, &GrantChangeParams{ConnId: "a", RoomId: "room1", RequesterId: "y"}))
	assert.Equal(t, []string{domain.EventChangeGranted}, y.types())
}

func TestAdminSuccessionIsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		e := newTestEnv(t, Config{})
		conns := make([]*fakeConn, 0, 4)
		for j := 0; j < 4; j++ {
			conn := e.connect(t, fmt.Sprintf("c%d", j))
			e.join(t, conn, "room1", fmt.Sprintf("user%d", j))
			conns = append(conns, conn)
		}
		e.service.Disconnect(e.ctx, "c2")
		e.service.Disconnect(e.ctx, "c0")

		assert.Len(t, conns[1].ofType(domain.EventAdminStatus), 2)
		assert.Equal(t, AdminStatus{IsAdminUser: true}, conns[1].ofType(domain.EventAdminStatus)[1].Payload)
		assert.Len(t, conns[3].ofType(domain.EventAdminStatus), 1)
	}
}

func TestLeaveRoom(t *testing.T) {
	e := newTestEnv(t, Config{})
	a := e.connect(t, "a")
	b := e.connect(t, "b")
	e.join(t, a, "room1", "A")
	e.join(t, b, "room1", "B")
	a.reset()

	// other room: no-op
	require.NoError(t, e.service.LeaveRoom(e.ctx, &LeaveRoomParams{ConnId: "b", RoomId: "room2"}))
	assert.Empty(t, a.types())

	require.NoError(t, e.service.LeaveRoom(e.ctx, &LeaveRoomParams{ConnId: "b", RoomId: "room1"}))
	assert.Equal(t, []string{"B left the room"}, chatTexts(a.ofType(domain.EventChatMessage)))
	assert.Equal(t, []string{"A"}, memberNames(a.ofType(domain.EventUsersUpdated)[0]))

	// repeated leave is idempotent
	a.reset()
	require.NoError(t, e.service.LeaveRoom(e.ctx, &LeaveRoomParams{ConnId: "b", RoomId: "room1"}))
	e.service.Disconnect(e.ctx, "b")
	assert.Empty(t, a.types())
}

func TestJoinAnotherRoomLeavesPrevious(t *testing.T) {
	e := newTestEnv(t, Config{})
	a := e.connect(t, "a")
	b := e.connect(t, "b")
	e.join(t, a, "room1", "A")
	e.join(t, b, "room1", "B")
	b.reset()

	// same room again is a no-op
	e.join(t, a, "room1", "A")
	assert.Empty(t, b.types())

	e.join(t, a, "room2", "A")
	assert.Equal(t, []string{"A left the room", "B is now the room admin"}, chatTexts(b.ofType(domain.EventChatMessage)))
	assert.True(t, e.roomRepo.Exists("room2"))

	info, err := e.service.GetRoomInfo(e.ctx, "room1")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, []string{info.Members[0].Name})
}

func TestMembersLimit(t *testing.T) {
	logger := slog.Default()
	s := NewService(roomInmemory.NewRepo(2, logger), connInmemory.NewRepo(logger), codeInmemory.NewRepo(logger), logger, &Config{})
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Connect(ctx, &fakeConn{id: id}))
	}

	require.NoError(t, s.JoinRoom(ctx, &JoinRoomParams{ConnId: "a", RoomId: "room1", Name: "A"}))
	require.NoError(t, s.JoinRoom(ctx, &JoinRoomParams{ConnId: "b", RoomId: "room1", Name: "B"}))
	err := s.JoinRoom(ctx, &JoinRoomParams{ConnId: "c", RoomId: "room1", Name: "C"})
	assert.ErrorIs(t, err, domain.ErrMembersLimitReached)

	info, err := s.GetRoomInfo(ctx, "room1")
	require.NoError(t, err)
	assert.Len(t, info.Members, 2)
}

func TestJoinValidation(t *testing.T) {
	e := newTestEnv(t, Config{NameMaxLength: 5})
	e.connect(t, "a")

	tests := []struct {
		name   string
		roomId string
		member string
	}{
		{name: "empty room", roomId: "", member: "A"},
		{name: "long room", roomId: strings.Repeat("r", 65), member: "A"},
		{name: "empty name", roomId: "room1", member: ""},
		{name: "long name", roomId: "room1", member: "abcdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.service.JoinRoom(e.ctx, &JoinRoomParams{ConnId: "a", RoomId: tt.roomId, Name: tt.member})
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.False(t, e.roomRepo.Exists("room1"))
}

func TestChatEdgeCases(t *testing.T) {
	e := newTestEnv(t, Config{ChatMessageMaxLength: 10})
	a := e.connect(t, "a")
	e.join(t, a, "room1", "A")
	a.reset()

	// empty text does not crash
	require.NoError(t, e.service.PostMessage(e.ctx, &PostMessageParams{ConnId: "a", RoomId: "room1", Text: ""}))
	assert.Len(t, a.ofType(domain.EventChatMessage), 1)

	err := e.service.PostMessage(e.ctx, &PostMessageParams{ConnId: "a", RoomId: "room1", Text: "way too long text"})
	assert.ErrorIs(t, err, ErrValidation)

	err = e.service.PostMessage(e.ctx, &PostMessageParams{ConnId: "a", RoomId: "missing", Text: "hi"})
	assert.Error(t, err)
	assert.Len(t, a.ofType(domain.EventChatMessage), 1)
}

func TestZeroLengthLimitsMeanUnlimited(t *testing.T) {
	e := newTestEnv(t, Config{})
	a := e.connect(t, "a")
	name := strings.Repeat("n", 100)
	e.join(t, a, "room1", name)
	a.reset()

	text := strings.Repeat("x", 5000)
	require.NoError(t, e.service.PostMessage(e.ctx, &PostMessageParams{ConnId: "a", RoomId: "room1", Text: "hi"}))
	require.NoError(t, e.service.PostMessage(e.ctx, &PostMessageParams{ConnId: "a", RoomId: "room1", Text: text}))

	msgs := a.ofType(domain.EventChatMessage)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hi", msgs[0].Payload.(domain.ChatMessage).Text)
	assert.Equal(t, text, msgs[1].Payload.(domain.ChatMessage).Text)
	assert.Equal(t, name, msgs[1].Payload.(domain.ChatMessage).SpeakerName)
}

func TestOpaqueRoomIds(t *testing.T) {
	e := newTestEnv(t, Config{})
	a := e.connect(t, "a")

	for _, roomId := range []string{"a b", "Room #1!", "комната"} {
		e.join(t, a, roomId, "A")
		assert.True(t, e.roomRepo.Exists(roomId), roomId)
	}
}

func TestDisconnectWithoutJoin(t *testing.T) {
	e := newTestEnv(t, Config{})
	e.connect(t, "a")

	e.service.Disconnect(e.ctx, "a")
	e.service.Disconnect(e.ctx, "a")
	assert.Equal(t, Stats{}, e.service.Stats())
}

func TestSendFailureClosesConnection(t *testing.T) {
	e := newTestEnv(t, Config{})
	a := e.connect(t, "a")
	b := e.connect(t, "b")
	c := e.connect(t, "c")
	e.join(t, a, "room1", "A")
	e.join(t, b, "room1", "B")
	e.join(t, c, "room1", "C")
	a.reset()
	c.reset()

	b.fail = true
	require.NoError(t, e.service.PostMessage(e.ctx, &PostMessageParams{ConnId: "a", RoomId: "room1", Text: "hi"}))
	assert.True(t, b.closed)
	assert.Len(t, a.ofType(domain.EventChatMessage), 1)
	assert.Len(t, c.ofType(domain.EventChatMessage), 1)

	// the closed connection's read loop ends with a disconnect
	e.service.Disconnect(e.ctx, "b")
	assert.Equal(t, []string{"A", "C"}, memberNames(a.ofType(domain.EventUsersUpdated)[0]))
}

func TestCollaboratorHooks(t *testing.T) {
	e := newTestEnv(t, Config{})
	a := e.connect(t, "a")
	b := e.connect(t, "b")
	e.join(t, a, "room1", "A")
	e.join(t, b, "room1", "B")
	a.reset()
	b.reset()

	require.NoError(t, e.service.OnMediaChanged(e.ctx, "room1"))
	require.NoError(t, e.service.OnSubtitlesChanged(e.ctx, "room1"))
	require.NoError(t, e.service.OnMediaChanged(e.ctx, "missing"))
	for _, conn := range []*fakeConn{a, b} {
		assert.Equal(t, []string{domain.EventMediaChanged, domain.EventSubtitlesUpdated}, conn.types())
	}
}

func TestEndSession(t *testing.T) {
	e := newTestEnv(t, Config{})
	code, err := e.service.CreateRoomCode(e.ctx)
	require.NoError(t, err)

	a := e.connect(t, "a")
	b := e.connect(t, "b")
	e.join(t, a, code, "A")
	e.join(t, b, code, "B")
	a.reset()
	b.reset()

	require.NoError(t, e.service.EndSession(e.ctx, code))
	assert.Equal(t, []string{domain.EventSessionEnded}, a.types())
	assert.Equal(t, []string{domain.EventSessionEnded}, b.types())
	assert.False(t, e.roomRepo.Exists(code))

	_, err = e.service.GetRoomInfo(e.ctx, code)
	assert.Error(t, err)

	// connections stay open and can join again
	e.service.Disconnect(e.ctx, "a")
	assert.Equal(t, []string{domain.EventSessionEnded}, b.types())
	e.join(t, b, code, "B")
	assert.True(t, e.roomRepo.Exists(code))

	require.NoError(t, e.service.EndSession(e.ctx, "unknown"))
}

func TestCreateRoomCode(t *testing.T) {
	e := newTestEnv(t, Config{})

	code, err := e.service.CreateRoomCode(e.ctx)
	require.NoError(t, err)
	assert.Regexp(t, "^[a-z0-9]{6}$", code)

	info, err := e.service.GetRoomInfo(e.ctx, code)
	require.NoError(t, err)
	assert.True(t, info.Issued)
	assert.False(t, info.Active)
	assert.False(t, e.roomRepo.Exists(code))

	// an active room and an issued code are both skipped
	a := e.connect(t, "a")
	e.join(t, a, "active", "A")
	candidates := []string{"active", code, "fresh1"}
	e.service.generateCode = func() (string, error) {
		next := candidates[0]
		candidates = candidates[1:]
		return next, nil
	}
	next, err := e.service.CreateRoomCode(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh1", next)

	e.service.generateCode = func() (string, error) { return code, nil }
	_, err = e.service.CreateRoomCode(e.ctx)
	assert.ErrorIs(t, err, ErrCodeExhausted)
}

func TestConcurrentMembershipKeepsAdminValid(t *testing.T) {
	e := newTestEnv(t, Config{})
	const n = 20
	conns := make([]*fakeConn, n)
	for i := range conns {
		conns[i] = e.connect(t, fmt.Sprintf("c%d", i))
	}

	var wg sync.WaitGroup
	for i := range conns {
		wg.Add(1)
		go func(conn *fakeConn) {
			defer wg.Done()
			e.service.JoinRoom(e.ctx, &JoinRoomParams{ConnId: conn.id, RoomId: "room1", Name: conn.id})
			if conn.id[len(conn.id)-1]%2 == 0 {
				e.service.Disconnect(e.ctx, conn.id)
			}
		}(conns[i])
	}
	wg.Wait()

	err := e.service.roomRepo.Get(e.ctx, "room1", func(rm *domain.Room) error {
		assert.True(t, rm.HasAdmin())
		assert.True(t, rm.HasMember(rm.AdminId()))
		assert.Equal(t, n/2, rm.Length())
		return nil
	})
	require.NoError(t, err)
}
