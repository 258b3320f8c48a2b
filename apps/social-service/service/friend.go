package service

import (
	"context"
	"errors"

	"social-server/apps/social-service/model"
	"social-server/pkg/logger"
)

// SendFriendRequest 发起好友申请
// 不论方向、不论状态，{from,to}之间已有记录就报已存在；
// 对自己发申请同样按已存在处理。重复调用是无害的no-op
func (s *Service) SendFriendRequest(ctx context.Context, fromID, toID int64) error {
	if fromID == toID {
		return model.ErrFriendRequestExists
	}

	if _, err := s.userDAO.GetUserByID(ctx, toID); err != nil {
		return err
	}

	if _, err := s.friendDAO.CreateLink(ctx, fromID, toID); err != nil {
		return err
	}

	s.publishEvent(ctx, EventFriendRequested, fromID, toID)

	s.log.Info(ctx, "Friend request sent",
		logger.F("from", fromID),
		logger.F("to", toID))
	return nil
}

// AcceptFriendRequest 接受好友申请
// 只有requester->accepter方向的pending记录才会被接受；
// 记录缺失、已接受、方向不对都是no-op并报未找到
func (s *Service) AcceptFriendRequest(ctx context.Context, accepterID, requesterID int64) error {
	if accepterID == requesterID {
		return model.ErrInvalidTransition
	}

	if err := s.friendDAO.AcceptLink(ctx, accepterID, requesterID); err != nil {
		return err
	}

	s.publishEvent(ctx, EventFriendAccepted, accepterID, requesterID)

	s.log.Info(ctx, "Friend request accepted",
		logger.F("accepter", accepterID),
		logger.F("requester", requesterID))
	return nil
}

// RemoveFriend 解除关系
// pending和accepted都直接删行，无记录时为no-op；不留历史，
// 审计依赖事件流水
func (s *Service) RemoveFriend(ctx context.Context, userID, otherID int64) error {
	if err := s.friendDAO.DeleteLink(ctx, userID, otherID); err != nil {
		return err
	}

	s.publishEvent(ctx, EventFriendRemoved, userID, otherID)
	return nil
}

// FriendshipStatus 访问者视角的关系状态
func (s *Service) FriendshipStatus(ctx context.Context, viewerID, otherID int64) (string, error) {
	if viewerID == otherID {
		return model.RelationNone, nil
	}

	link, err := s.friendDAO.GetLink(ctx, viewerID, otherID)
	if err != nil {
		if errors.Is(err, model.ErrFriendLinkNotFound) {
			return model.RelationNone, nil
		}
		return "", err
	}

	if link.Status == model.FriendStatusAccepted {
		return model.RelationAccepted, nil
	}
	if link.UserID == viewerID {
		return model.RelationPendingOutgoing, nil
	}
	return model.RelationPendingIncoming, nil
}

// ListFriends 已确认的好友
func (s *Service) ListFriends(ctx context.Context, userID int64) ([]*model.User, error) {
	return s.friendDAO.ListAcceptedPeers(ctx, userID)
}

// ListIncomingRequests 待处理的入站申请人
func (s *Service) ListIncomingRequests(ctx context.Context, userID int64) ([]*model.User, error) {
	return s.friendDAO.ListIncomingRequesters(ctx, userID)
}

// CountFriends 好友数
func (s *Service) CountFriends(ctx context.Context, userID int64) (int64, error) {
	return s.friendDAO.CountAccepted(ctx, userID)
}
