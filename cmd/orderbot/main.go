package main

import (
	"context"
	"os/signal"
	"syscall"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"github.com/Bessima/proxyshop-bot/internal/bot"
	"github.com/Bessima/proxyshop-bot/internal/config"
	"github.com/Bessima/proxyshop-bot/internal/config/db"
	"github.com/Bessima/proxyshop-bot/internal/middlewares/logger"
	"github.com/Bessima/proxyshop-bot/internal/repository"
	"github.com/Bessima/proxyshop-bot/internal/service"
	"github.com/Bessima/proxyshop-bot/internal/transport/telegram"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conf := config.InitConfig()

	if err := logger.Initialize(conf.LogLevel); err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return err
	}

	if err := repository.Migrate(conf.DatabaseDNS); err != nil {
		logger.Log.Error("migrations failed", zap.Error(err))
		return err
	}

	dbObj, err := db.NewDB(rootCtx, conf.DatabaseDNS)
	if err != nil {
		logger.Log.Error("Unable to connect to database", zap.Error(err))
		return err
	}
	defer dbObj.Close()

	api, err := tgbotapi.NewBotAPI(conf.TelegramToken)
	if err != nil {
		logger.Log.Error("Unable to connect to Telegram", zap.Error(err))
		return err
	}
	chat := telegram.NewClient(api)

	userRepository := repository.NewUserRepository(dbObj)
	itemRepository := repository.NewItemRepository(dbObj)
	orderRepository := repository.NewOrderRepository(dbObj)
	settingsRepository := repository.NewSettingsRepository(dbObj)
	faqRepository := repository.NewFaqRepository(dbObj)

	pricingService := service.NewPricingService(settingsRepository)
	draftService := service.NewDraftService(itemRepository, orderRepository)
	cartService := service.NewCartService(orderRepository, userRepository, settingsRepository, pricingService, chat)
	managerService := service.NewManagerService(orderRepository, chat)

	orderBot := bot.New(bot.Deps{
		API:      api,
		Chat:     chat,
		Users:    userRepository,
		Items:    itemRepository,
		Faqs:     faqRepository,
		Settings: settingsRepository,
		Drafts:   draftService,
		Cart:     cartService,
		Manager:  managerService,
		Pricing:  pricingService,
	})

	serverService := service.NewServerService(rootCtx, conf.OpsAddress, dbObj)

	serverErr := make(chan error, 1)
	logger.Log.Info("Running ops server on", zap.String("address", conf.OpsAddress))
	go serverService.RunServer(&serverErr)

	botDone := make(chan struct{})
	go func() {
		defer close(botDone)
		orderBot.Run(rootCtx)
	}()

	select {
	case <-rootCtx.Done():
		logger.Log.Info("Received shutdown signal, shutting down.")
	case err = <-serverErr:
		logger.Log.Error("Server error", zap.Error(err))
		stop()
	}

	<-botDone

	if shutdownErr := serverService.Shutdown(); shutdownErr != nil {
		logger.Log.Error("Server shutdown error", zap.Error(shutdownErr))
	}

	return err
}
