package server

//go:generate swag init -g internal/server/server.go -o docs/swagger

// @title GHG Review API
// @version 0.1
// @description Interactive documentation for the emissions-report change review API surface.
// @contact.name GHG Review Maintainers
// @contact.url https://github.com/carbonlens/ghgreview
// @BasePath /
