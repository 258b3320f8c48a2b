package service

import (
	"context"

	"social-server/apps/social-service/model"
)

// ProfileView 个人主页读模型
// 纯组合，无独立状态，任何一步失败直接向上传递
func (s *Service) ProfileView(ctx context.Context, viewerID int64, targetUsername string) (*model.ProfileView, error) {
	user, err := s.userDAO.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	view := &model.ProfileView{
		User:         user,
		IsOwnProfile: user.ID == viewerID,
		Relation:     model.RelationNone,
	}

	if !view.IsOwnProfile {
		relation, err := s.FriendshipStatus(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
		view.Relation = relation
	}

	count, err := s.friendDAO.CountAccepted(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	view.FriendsCount = count

	return view, nil
}

// FriendsPageView 好友页读模型：好友列表加待处理的入站申请
func (s *Service) FriendsPageView(ctx context.Context, userID int64) (*model.FriendsPageView, error) {
	friends, err := s.friendDAO.ListAcceptedPeers(ctx, userID)
	if err != nil {
		return nil, err
	}

	incoming, err := s.friendDAO.ListIncomingRequesters(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.FriendsPageView{
		Friends:  friends,
		Incoming: incoming,
	}, nil
}
