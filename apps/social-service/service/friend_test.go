package service

import (
	"context"
	"errors"
	"testing"

	"social-server/apps/social-service/model"
)

// TestSendFriendRequest 发起申请后双方看到互补的pending状态
func TestSendFriendRequest(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.mustRegister(t, "alice")
	bob := env.mustRegister(t, "bob")

	if err := env.svc.SendFriendRequest(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("send request: %v", err)
	}

	status, err := env.svc.FriendshipStatus(ctx, alice.ID, bob.ID)
	if err != nil || status != model.RelationPendingOutgoing {
		t.Errorf("alice sees %q (err=%v), want %q", status, err, model.RelationPendingOutgoing)
	}
	status, err = env.svc.FriendshipStatus(ctx, bob.ID, alice.ID)
	if err != nil || status != model.RelationPendingIncoming {
		t.Errorf("bob sees %q (err=%v), want %q", status, err, model.RelationPendingIncoming)
	}
}

// TestSendFriendRequestDuplicate 同一对用户不论方向只允许一条记录
func TestSendFriendRequestDuplicate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.mustRegister(t, "alice")
	bob := env.mustRegister(t, "bob")

	if err := env.svc.SendFriendRequest(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("first request: %v", err)
	}

	if err := env.svc.SendFriendRequest(ctx, alice.ID, bob.ID); !errors.Is(err, model.ErrFriendRequestExists) {
		t.Errorf("repeat same direction: got %v, want ErrFriendRequestExists", err)
	}
	if err := env.svc.SendFriendRequest(ctx, bob.ID, alice.ID); !errors.Is(err, model.ErrFriendRequestExists) {
		t.Errorf("reverse direction: got %v, want ErrFriendRequestExists", err)
	}
	if len(env.friends.links) != 1 {
		t.Errorf("link rows = %d, want 1", len(env.friends.links))
	}
}

// TestSendFriendRequestToSelf 不允许对自己发申请
func TestSendFriendRequestToSelf(t *testing.T) {
	env := newTestEnv()
	alice := env.mustRegister(t, "alice")

	err := env.svc.SendFriendRequest(context.Background(), alice.ID, alice.ID)
	if !errors.Is(err, model.ErrFriendRequestExists) {
		t.Errorf("self request: got %v, want ErrFriendRequestExists", err)
	}
	if len(env.friends.links) != 0 {
		t.Errorf("link rows = %d, want 0", len(env.friends.links))
	}
}

// TestSendFriendRequestUnknownTarget 目标用户不存在时报未找到
func TestSendFriendRequestUnknownTarget(t *testing.T) {
	env := newTestEnv()
	alice := env.mustRegister(t, "alice")

	err := env.svc.SendFriendRequest(context.Background(), alice.ID, 999)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

// TestAcceptFriendRequest 只有被申请方能接受，接受后双方都是accepted
func TestAcceptFriendRequest(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.mustRegister(t, "alice")
	bob := env.mustRegister(t, "bob")

	if err := env.svc.SendFriendRequest(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("send request: %v", err)
	}

	// 申请方自己接受不了：不存在bob->alice的pending记录
	if err := env.svc.AcceptFriendRequest(ctx, alice.ID, bob.ID); !errors.Is(err, model.ErrFriendLinkNotFound) {
		t.Errorf("requester accepting own request: got %v, want ErrFriendLinkNotFound", err)
	}

	if err := env.svc.AcceptFriendRequest(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	for _, pair := range [][2]int64{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		status, err := env.svc.FriendshipStatus(ctx, pair[0], pair[1])
		if err != nil || status != model.RelationAccepted {
			t.Errorf("FriendshipStatus(%d,%d) = %q (err=%v), want accepted", pair[0], pair[1], status, err)
		}
	}

	// 重复接受是no-op并报未找到
	if err := env.svc.AcceptFriendRequest(ctx, bob.ID, alice.ID); !errors.Is(err, model.ErrFriendLinkNotFound) {
		t.Errorf("repeat accept: got %v, want ErrFriendLinkNotFound", err)
	}
}

// TestAcceptFriendRequestSelf 自己接受自己是非法转移
func TestAcceptFriendRequestSelf(t *testing.T) {
	env := newTestEnv()
	alice := env.mustRegister(t, "alice")

	err := env.svc.AcceptFriendRequest(context.Background(), alice.ID, alice.ID)
	if !errors.Is(err, model.ErrInvalidTransition) {
		t.Errorf("got %v, want ErrInvalidTransition", err)
	}
}

// TestRemoveFriend 解除关系后回到none，并且可以重新发起申请
func TestRemoveFriend(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.mustRegister(t, "alice")
	bob := env.mustRegister(t, "bob")

	if err := env.svc.SendFriendRequest(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("send request: %v", err)
	}
	if err := env.svc.AcceptFriendRequest(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if err := env.svc.RemoveFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	status, err := env.svc.FriendshipStatus(ctx, bob.ID, alice.ID)
	if err != nil || status != model.RelationNone {
		t.Errorf("after remove: %q (err=%v), want none", status, err)
	}

	// 无记录时再删是无害的no-op
	if err := env.svc.RemoveFriend(ctx, bob.ID, alice.ID); err != nil {
		t.Errorf("remove again: %v", err)
	}

	// 历史不留痕迹，可以重新走一遍完整流程
	if err := env.svc.SendFriendRequest(ctx, bob.ID, alice.ID); err != nil {
		t.Errorf("resend after remove: %v", err)
	}
}

// TestRemovePendingRequest 解除也适用于pending：撤回或拒绝申请
func TestRemovePendingRequest(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.mustRegister(t, "alice")
	bob := env.mustRegister(t, "bob")

	if err := env.svc.SendFriendRequest(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("send request: %v", err)
	}
	// bob拒绝
	if err := env.svc.RemoveFriend(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	status, _ := env.svc.FriendshipStatus(ctx, alice.ID, bob.ID)
	if status != model.RelationNone {
		t.Errorf("after reject: %q, want none", status)
	}
}

// TestFriendshipStatusSelf 自己对自己永远是none
func TestFriendshipStatusSelf(t *testing.T) {
	env := newTestEnv()
	alice := env.mustRegister(t, "alice")

	status, err := env.svc.FriendshipStatus(context.Background(), alice.ID, alice.ID)
	if err != nil || status != model.RelationNone {
		t.Errorf("got %q (err=%v), want none", status, err)
	}
}

// TestListFriendsAndIncoming 好友列表和入站申请列表互不串线
func TestListFriendsAndIncoming(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	alice := env.mustRegister(t, "alice")
	bob := env.mustRegister(t, "bob")
	carol := env.mustRegister(t, "carol")

	// bob是alice的好友，carol在向alice申请
	if err := env.svc.SendFriendRequest(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("send request: %v", err)
	}
	if err := env.svc.AcceptFriendRequest(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := env.svc.SendFriendRequest(ctx, carol.ID, alice.ID); err != nil {
		t.Fatalf("carol request: %v", err)
	}

	friends, err := env.svc.ListFriends(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list friends: %v", err)
	}
	if len(friends) != 1 || friends[0].ID != bob.ID {
		t.Errorf("friends = %v, want [bob]", friends)
	}

	incoming, err := env.svc.ListIncomingRequests(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list incoming: %v", err)
	}
	if len(incoming) != 1 || incoming[0].ID != carol.ID {
		t.Errorf("incoming = %v, want [carol]", incoming)
	}

	// carol的出站申请不出现在她自己的入站列表里
	carolIncoming, _ := env.svc.ListIncomingRequests(ctx, carol.ID)
	if len(carolIncoming) != 0 {
		t.Errorf("carol incoming = %v, want empty", carolIncoming)
	}

	count, err := env.svc.CountFriends(ctx, alice.ID)
	if err != nil || count != 1 {
		t.Errorf("count = %d (err=%v), want 1", count, err)
	}
}
