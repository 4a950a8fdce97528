package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"greencart/internal/config"
	"greencart/internal/db"
	"greencart/internal/httpserver"
	"greencart/internal/metrics"
	orderrepo "greencart/internal/repository/order"
	productrepo "greencart/internal/repository/product"
	tokenrepo "greencart/internal/repository/token"
	userrepo "greencart/internal/repository/user"
	cartsvc "greencart/internal/service/cart"
	ordersvc "greencart/internal/service/order"
	"greencart/internal/service/payment"
	productsvc "greencart/internal/service/product"
	sellersvc "greencart/internal/service/seller"
	"greencart/internal/service/session"
	usersvc "greencart/internal/service/user"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	payCfg := payment.Config{
		KeyID:     cfg.RazorpayKeyID,
		KeySecret: cfg.RazorpayKeySecret,
		BaseURL:   cfg.RazorpayBaseURL,
		Currency:  cfg.PaymentCurrency,
	}
	if err := payCfg.Validate(); err != nil {
		logger.Fatalf("payment config: %v", err)
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	reg := metrics.NewRegistry()
	sessions := session.NewManager(tokenrepo.NewPostgres(dbpool), cfg.SessionTTL)

	productRepo := productrepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	orderService := ordersvc.New(
		orderRepo,
		productRepo,
		payment.NewClient(payCfg, nil, logger),
		payment.NewVerifier(payCfg.KeySecret),
		reg,
		logger,
	)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		UserSvc:        usersvc.New(userRepo, sessions),
		SellerSvc:      sellersvc.New(cfg.SellerEmail, cfg.SellerPassword, sessions),
		ProductSvc:     productsvc.New(productRepo),
		CartSvc:        cartsvc.New(userRepo, productRepo),
		OrderSvc:       orderService,
		Metrics:        reg,
		AllowedOrigins: cfg.AllowedOrigins,
		SecureCookies:  cfg.Production,
		SessionTTL:     cfg.SessionTTL,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
