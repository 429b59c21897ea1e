package di

import (
	"github.com/zervix/marketplace/internal/app"
	"github.com/zervix/marketplace/internal/config"
	"github.com/zervix/marketplace/internal/logger"
	"github.com/zervix/marketplace/internal/notify"
	"github.com/zervix/marketplace/internal/pkg/auth"
	"github.com/zervix/marketplace/internal/server/http/handlers"
	"github.com/zervix/marketplace/internal/server/http/router"
	"github.com/zervix/marketplace/internal/storage/postgres"
	"github.com/zervix/marketplace/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(func(f *app.MarketplaceFacade) handlers.MarketplaceFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
