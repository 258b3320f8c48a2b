package main

import (
	"github.com/gin-gonic/gin"

	"social-server/apps/social-service/dao"
	"social-server/apps/social-service/handler"
	"social-server/apps/social-service/model"
	"social-server/apps/social-service/service"
	"social-server/pkg/server"
	"social-server/pkg/snowflake"
)

func main() {
	// 创建应用程序
	app := server.NewApplication("social-service")

	// 启用HTTP服务器
	app.EnableHTTP()

	// 建表和索引
	if err := app.GetPostgreSQL().AutoMigrate(&model.User{}, &model.Friend{}, &model.Message{}); err != nil {
		panic(err)
	}

	// 初始化DAO层
	userDAO := dao.NewUserDAO(app.GetPostgreSQL())
	friendDAO := dao.NewFriendDAO(app.GetPostgreSQL())
	messageDAO := dao.NewMessageDAO(app.GetPostgreSQL())

	// ElasticSearch可选，为nil时检索退回PostgreSQL
	var searchDAO dao.SearchDAO
	if es := app.GetElasticSearch(); es != nil {
		searchDAO = dao.NewElasticsearchDAO(es, app.GetConfig().Elasticsearch.UserIndex, app.GetLogger())
	}

	// 消息ID生成器
	idGen, err := snowflake.NewSnowflake(1)
	if err != nil {
		panic(err)
	}

	// 初始化Service层
	cfg := app.GetConfig()
	svc := service.NewService(service.Options{
		UserDAO:       userDAO,
		FriendDAO:     friendDAO,
		MessageDAO:    messageDAO,
		SearchDAO:     searchDAO,
		Redis:         app.GetRedisClient(),
		Kafka:         app.GetKafkaProducer(),
		IDGen:         idGen,
		Log:           app.GetLogger(),
		EventTopic:    cfg.Kafka.EventTopic,
		DefaultAvatar: cfg.App.DefaultAvatar,
	})

	// 初始化Handler并注册HTTP路由
	httpHandler := handler.NewHTTPHandler(svc, cfg, app.GetLogger())
	app.RegisterHTTPRoutes(func(engine *gin.Engine) {
		httpHandler.RegisterRoutes(engine)
	})

	// 运行应用程序
	if err := app.Run(); err != nil {
		panic(err)
	}
}
