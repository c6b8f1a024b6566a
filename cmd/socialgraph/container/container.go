package container

import (
	"github.com/linkhive/socialgraph/cmd/socialgraph/repository"
	"github.com/linkhive/socialgraph/cmd/socialgraph/service"
	"github.com/linkhive/socialgraph/common/bootstrap"
	"github.com/linkhive/socialgraph/common/cache"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	Components *bootstrap.Components

	// Repositories
	MemberRepo       *repository.MemberRepository
	ConnectionRepo   *repository.ConnectionRepository
	NotificationRepo *repository.NotificationRepository
	PostRepo         *repository.PostRepository
	ConversationRepo *repository.ConversationRepository

	// Services
	FanoutService         *service.FanoutService
	GraphService          *service.GraphService
	RecommendationService *service.RecommendationService
	FeedService           *service.FeedService
	MessagingService      *service.MessagingService
	MemberService         *service.MemberService
}

// NewContainer initializes all services and repositories once
func NewContainer(components *bootstrap.Components) (*Container, error) {
	memberRepo := repository.NewMemberRepository(components.DB)
	connectionRepo := repository.NewConnectionRepository(components.DB)
	notificationRepo := repository.NewNotificationRepository(components.DB)
	postRepo := repository.NewPostRepository(components.DB)
	conversationRepo := repository.NewConversationRepository(components.DB)

	// Services, dependencies first. Fanout is the shared side-effect
	// hub the mutating services hand committed state to.
	fanoutService := service.NewFanoutService(notificationRepo, components.Dispatcher, components.Logger)
	graphService := service.NewGraphService(connectionRepo, memberRepo, fanoutService, components.Logger)

	var neighborCache cache.Cache
	if components.Config.Cache.Enabled {
		neighborCache = components.Cache
	}
	recommendationService := service.NewRecommendationService(memberRepo, connectionRepo, neighborCache, components.Logger)

	feedService := service.NewFeedService(postRepo, connectionRepo, fanoutService, components.Logger)
	messagingService := service.NewMessagingService(conversationRepo, memberRepo, fanoutService, components.Logger)
	memberService := service.NewMemberService(memberRepo, components.Logger)

	return &Container{
		Components: components,

		MemberRepo:       memberRepo,
		ConnectionRepo:   connectionRepo,
		NotificationRepo: notificationRepo,
		PostRepo:         postRepo,
		ConversationRepo: conversationRepo,

		FanoutService:         fanoutService,
		GraphService:          graphService,
		RecommendationService: recommendationService,
		FeedService:           feedService,
		MessagingService:      messagingService,
		MemberService:         memberService,
	}, nil
}
