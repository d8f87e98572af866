//go:build wireinject
// +build wireinject

package main

import (
	"Campus/cmd"
	"Campus/database"
	"Campus/internal/config"
	"Campus/internal/handlers"
	"Campus/internal/repository"
	"Campus/internal/services"
	"github.com/google/wire"
)

func Provider() (*config.Configuration, error) {
	return config.LoadConfiguration(configurationPath())
}

func InitializeServer() (*cmd.Server, func(), error) {
	wire.Build(
		cmd.NewServer,
		services.NewCourseService,
		handlers.NewCourseHandler,
		repository.ProvideCourseRepository,
		services.NewStudentService,
		handlers.NewStudentHandler,
		repository.ProvideStudentRepository,
		database.ProvideStore,
		services.NewLogService,
		services.ProvideLogger,
		services.NewJanitorService,
		Provider,
	)
	return nil, nil, nil
}
