package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           TradeFlex API
// @version         0.1.0
// @description     Trade flex cards, leaderboard, community and Pro billing.
// @host            localhost:8080
// @BasePath        /
// @schemes         http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
