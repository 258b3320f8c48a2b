package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"social-server/apps/social-service/model"
)

// sendAt 以指定时间写入一条消息，绕过服务层的time.Now
func (e *testEnv) sendAt(t *testing.T, senderID, receiverID int64, content string, at time.Time) *model.Message {
	t.Helper()
	msg := &model.Message{SenderID: senderID, ReceiverID: receiverID, Content: content, SentAt: at}
	if err := e.messages.CreateMessage(context.Background(), msg); err != nil {
		t.Fatalf("create message: %v", err)
	}
	return msg
}

// TestSendMessage 发消息不要求好友关系
func TestSendMessage(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.mustRegister(t, "alice")
	bob := env.mustRegister(t, "bob")

	msg, err := env.svc.SendMessage(ctx, alice.ID, bob.ID, "hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.SenderID != alice.ID || msg.ReceiverID != bob.ID || msg.Content != "hello" {
		t.Errorf("message = %+v", msg)
	}
	if msg.IsRead {
		t.Error("new message should be unread")
	}
}

// TestSendMessageEmptyContent 空白内容拒绝且不落库
func TestSendMessageEmptyContent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.mustRegister(t, "alice")
	bob := env.mustRegister(t, "bob")

	for _, content := range []string{"", "   ", "\t\n"} {
		if _, err := env.svc.SendMessage(ctx, alice.ID, bob.ID, content); !errors.Is(err, model.ErrEmptyContent) {
			t.Errorf("content %q: got %v, want ErrEmptyContent", content, err)
		}
	}
	if len(env.messages.messages) != 0 {
		t.Errorf("message rows = %d, want 0", len(env.messages.messages))
	}
}

// TestSendMessageUnknownReceiver 收件人不存在时报未找到
func TestSendMessageUnknownReceiver(t *testing.T) {
	env := newTestEnv()
	alice := env.mustRegister(t, "alice")

	_, err := env.svc.SendMessage(context.Background(), alice.ID, 999, "hello")
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

// TestListDialogues 每个对端只出现一次，按最近消息时间倒序
func TestListDialogues(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.mustRegister(t, "alice")
	bob := env.mustRegister(t, "bob")
	carol := env.mustRegister(t, "carol")

	base := time.Now().Add(-time.Hour)
	env.sendAt(t, alice.ID, bob.ID, "to bob 1", base)
	env.sendAt(t, bob.ID, alice.ID, "from bob", base.Add(time.Minute))
	env.sendAt(t, alice.ID, carol.ID, "to carol", base.Add(2*time.Minute))
	env.sendAt(t, alice.ID, bob.ID, "to bob 2", base.Add(3*time.Minute))

	dialogues, err := env.svc.ListDialogues(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list dialogues: %v", err)
	}
	if len(dialogues) != 2 {
		t.Fatalf("dialogues = %d, want 2", len(dialogues))
	}
	// bob的会话最近，排第一
	if dialogues[0].PeerID != bob.ID || dialogues[1].PeerID != carol.ID {
		t.Errorf("order = [%d, %d], want [bob, carol]", dialogues[0].PeerID, dialogues[1].PeerID)
	}
	if !dialogues[0].LastTime.Equal(base.Add(3 * time.Minute)) {
		t.Errorf("bob last_time = %v, want latest message time", dialogues[0].LastTime)
	}

	// 与会话无关的第三方看不到别人的会话
	carolDialogues, _ := env.svc.ListDialogues(ctx, carol.ID)
	if len(carolDialogues) != 1 || carolDialogues[0].PeerID != alice.ID {
		t.Errorf("carol dialogues = %v, want only alice", carolDialogues)
	}
}

// TestGetThread 整段对话按时间正序，查看的同时只把自己收到的标记为已读
func TestGetThread(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.mustRegister(t, "alice")
	bob := env.mustRegister(t, "bob")

	base := time.Now().Add(-time.Hour)
	m1 := env.sendAt(t, alice.ID, bob.ID, "hi bob", base)
	m2 := env.sendAt(t, bob.ID, alice.ID, "hi alice", base.Add(time.Minute))
	m3 := env.sendAt(t, alice.ID, bob.ID, "how are you", base.Add(2*time.Minute))

	thread, err := env.svc.GetThread(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("get thread: %v", err)
	}
	if len(thread) != 3 {
		t.Fatalf("thread = %d messages, want 3", len(thread))
	}
	for i, want := range []int64{m1.ID, m2.ID, m3.ID} {
		if thread[i].ID != want {
			t.Errorf("thread[%d].ID = %d, want %d", i, thread[i].ID, want)
		}
	}

	// alice收到的已读，alice发出的不受影响
	if !m2.IsRead {
		t.Error("message received by viewer should be marked read")
	}
	if m1.IsRead || m3.IsRead {
		t.Error("messages sent by viewer must not be touched")
	}
}

// TestGetThreadUnknownPeer 对端不存在时报未找到
func TestGetThreadUnknownPeer(t *testing.T) {
	env := newTestEnv()
	alice := env.mustRegister(t, "alice")

	_, err := env.svc.GetThread(context.Background(), alice.ID, 999)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

// TestUnreadCount 未读数只统计自己收到且未读的消息
func TestUnreadCount(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.mustRegister(t, "alice")
	bob := env.mustRegister(t, "bob")
	carol := env.mustRegister(t, "carol")

	base := time.Now().Add(-time.Hour)
	env.sendAt(t, bob.ID, alice.ID, "one", base)
	env.sendAt(t, carol.ID, alice.ID, "two", base.Add(time.Minute))
	env.sendAt(t, alice.ID, bob.ID, "out", base.Add(2*time.Minute))

	count, err := env.svc.UnreadCount(ctx, alice.ID)
	if err != nil || count != 2 {
		t.Fatalf("unread = %d (err=%v), want 2", count, err)
	}

	// 读完bob的对话后只剩carol的那条
	if _, err := env.svc.GetThread(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("get thread: %v", err)
	}
	count, err = env.svc.UnreadCount(ctx, alice.ID)
	if err != nil || count != 1 {
		t.Errorf("unread after reading bob = %d (err=%v), want 1", count, err)
	}

	// 再读一次不会重复计数或复位
	if _, err := env.svc.GetThread(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("get thread again: %v", err)
	}
	count, _ = env.svc.UnreadCount(ctx, alice.ID)
	if count != 1 {
		t.Errorf("unread after rereading = %d, want 1", count)
	}
}
