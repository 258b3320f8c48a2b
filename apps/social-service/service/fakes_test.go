package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"social-server/apps/social-service/model"
)

// 内存版DAO实现，行为与PostgreSQL实现保持一致，
// 让服务层测试不依赖数据库

type fakeUserDAO struct {
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserDAO() *fakeUserDAO {
	return &fakeUserDAO{nextID: 1, users: make(map[int64]*model.User)}
}

func (f *fakeUserDAO) CreateUser(ctx context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return model.ErrDuplicateUsername
		}
	}
	user.ID = f.nextID
	f.nextID++
	if user.RegisteredAt.IsZero() {
		user.RegisteredAt = time.Now()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserDAO) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserDAO) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserDAO) UpdateProfile(ctx context.Context, userID int64, updates map[string]interface{}) error {
	user, ok := f.users[userID]
	if !ok {
		return model.ErrUserNotFound
	}
	for column, value := range updates {
		s, _ := value.(string)
		switch column {
		case "first_name":
			user.FirstName = s
		case "last_name":
			user.LastName = s
		case "about":
			user.About = s
		case "avatar":
			user.Avatar = s
		}
	}
	return nil
}

func (f *fakeUserDAO) ListUsers(ctx context.Context, excludeID int64) ([]*model.User, error) {
	var result []*model.User
	for _, u := range f.users {
		if u.ID != excludeID {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (f *fakeUserDAO) SearchUsers(ctx context.Context, keyword string, excludeID int64) ([]*model.User, error) {
	keyword = strings.ToLower(keyword)
	var result []*model.User
	for _, u := range f.users {
		if u.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(u.Username), keyword) ||
			strings.Contains(strings.ToLower(u.FirstName), keyword) ||
			strings.Contains(strings.ToLower(u.LastName), keyword) {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (f *fakeUserDAO) GetUsersByIDs(ctx context.Context, userIDs []int64) ([]*model.User, error) {
	var result []*model.User
	for _, id := range userIDs {
		if u, ok := f.users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

type fakeFriendDAO struct {
	users  *fakeUserDAO
	nextID int64
	links  []*model.Friend
}

func newFakeFriendDAO(users *fakeUserDAO) *fakeFriendDAO {
	return &fakeFriendDAO{users: users, nextID: 1}
}

func (f *fakeFriendDAO) find(a, b int64) *model.Friend {
	for _, link := range f.links {
		if (link.UserID == a && link.FriendID == b) || (link.UserID == b && link.FriendID == a) {
			return link
		}
	}
	return nil
}

func (f *fakeFriendDAO) CreateLink(ctx context.Context, fromID, toID int64) (*model.Friend, error) {
	if f.find(fromID, toID) != nil {
		return nil, model.ErrFriendRequestExists
	}
	link := &model.Friend{
		ID:        f.nextID,
		UserID:    fromID,
		FriendID:  toID,
		Status:    model.FriendStatusPending,
		CreatedAt: time.Now(),
	}
	link.PairMin, link.PairMax = model.CanonicalPair(fromID, toID)
	f.nextID++
	f.links = append(f.links, link)
	return link, nil
}

func (f *fakeFriendDAO) AcceptLink(ctx context.Context, accepterID, requesterID int64) error {
	for _, link := range f.links {
		if link.UserID == requesterID && link.FriendID == accepterID && link.Status == model.FriendStatusPending {
			link.Status = model.FriendStatusAccepted
			return nil
		}
	}
	return model.ErrFriendLinkNotFound
}

func (f *fakeFriendDAO) DeleteLink(ctx context.Context, userID, otherID int64) error {
	for i, link := range f.links {
		if (link.UserID == userID && link.FriendID == otherID) || (link.UserID == otherID && link.FriendID == userID) {
			f.links = append(f.links[:i], f.links[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeFriendDAO) GetLink(ctx context.Context, userID, otherID int64) (*model.Friend, error) {
	if link := f.find(userID, otherID); link != nil {
		return link, nil
	}
	return nil, model.ErrFriendLinkNotFound
}

func (f *fakeFriendDAO) ListAcceptedPeers(ctx context.Context, userID int64) ([]*model.User, error) {
	var peers []*model.User
	for _, link := range f.links {
		if link.Status != model.FriendStatusAccepted {
			continue
		}
		var peerID int64
		if link.UserID == userID {
			peerID = link.FriendID
		} else if link.FriendID == userID {
			peerID = link.UserID
		} else {
			continue
		}
		if u, ok := f.users.users[peerID]; ok {
			peers = append(peers, u)
		}
	}
	sort.Slice(peers, func(i, j int) bool { return peers[i].Username < peers[j].Username })
	return peers, nil
}

func (f *fakeFriendDAO) ListIncomingRequesters(ctx context.Context, userID int64) ([]*model.User, error) {
	var requesters []*model.User
	for i := len(f.links) - 1; i >= 0; i-- {
		link := f.links[i]
		if link.FriendID == userID && link.Status == model.FriendStatusPending {
			if u, ok := f.users.users[link.UserID]; ok {
				requesters = append(requesters, u)
			}
		}
	}
	return requesters, nil
}

func (f *fakeFriendDAO) CountAccepted(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for _, link := range f.links {
		if link.Status == model.FriendStatusAccepted && (link.UserID == userID || link.FriendID == userID) {
			count++
		}
	}
	return count, nil
}

type fakeMessageDAO struct {
	users    *fakeUserDAO
	nextID   int64
	messages []*model.Message
}

func newFakeMessageDAO(users *fakeUserDAO) *fakeMessageDAO {
	return &fakeMessageDAO{users: users, nextID: 1}
}

func (f *fakeMessageDAO) CreateMessage(ctx context.Context, msg *model.Message) error {
	if msg.ID == 0 {
		msg.ID = f.nextID
	}
	f.nextID++
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeMessageDAO) ListDialogues(ctx context.Context, viewerID int64) ([]*model.Dialogue, error) {
	latest := make(map[int64]time.Time)
	for _, msg := range f.messages {
		var peerID int64
		if msg.SenderID == viewerID {
			peerID = msg.ReceiverID
		} else if msg.ReceiverID == viewerID {
			peerID = msg.SenderID
		} else {
			continue
		}
		if msg.SentAt.After(latest[peerID]) {
			latest[peerID] = msg.SentAt
		}
	}

	var dialogues []*model.Dialogue
	for peerID, lastTime := range latest {
		peer := f.users.users[peerID]
		dialogues = append(dialogues, &model.Dialogue{PeerID: peerID, Peer: peer, LastTime: lastTime})
	}
	sort.Slice(dialogues, func(i, j int) bool { return dialogues[i].LastTime.After(dialogues[j].LastTime) })
	return dialogues, nil
}

func (f *fakeMessageDAO) GetThreadAndMarkRead(ctx context.Context, viewerID, peerID int64) ([]*model.Message, error) {
	var thread []*model.Message
	for _, msg := range f.messages {
		if (msg.SenderID == viewerID && msg.ReceiverID == peerID) ||
			(msg.SenderID == peerID && msg.ReceiverID == viewerID) {
			thread = append(thread, msg)
		}
	}
	sort.Slice(thread, func(i, j int) bool {
		if thread[i].SentAt.Equal(thread[j].SentAt) {
			return thread[i].ID < thread[j].ID
		}
		return thread[i].SentAt.Before(thread[j].SentAt)
	})
	for _, msg := range thread {
		if msg.ReceiverID == viewerID && !msg.IsRead {
			msg.IsRead = true
		}
	}
	return thread, nil
}

func (f *fakeMessageDAO) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for _, msg := range f.messages {
		if msg.ReceiverID == userID && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

// testEnv 组装好的测试环境
type testEnv struct {
	svc      *Service
	users    *fakeUserDAO
	friends  *fakeFriendDAO
	messages *fakeMessageDAO
}

func newTestEnv() *testEnv {
	users := newFakeUserDAO()
	friends := newFakeFriendDAO(users)
	messages := newFakeMessageDAO(users)
	svc := NewService(Options{
		UserDAO:    users,
		FriendDAO:  friends,
		MessageDAO: messages,
	})
	return &testEnv{svc: svc, users: users, friends: friends, messages: messages}
}

// mustRegister 注册用户，失败直接终止测试
func (e *testEnv) mustRegister(t *testing.T, username string) *model.User {
	t.Helper()
	user, err := e.svc.Register(context.Background(), RegisterParams{
		Username: username,
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}
