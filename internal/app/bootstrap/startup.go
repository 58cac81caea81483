// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/seeding"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// Unlike ConnectDB and EnsureSchema, which focus on infrastructure, Startup
// is for application-level initialization. Here that means seeding the data
// the API cannot operate without: the Super Admin role, the Common blog
// category, and (when configured) the initial Super Admin account.
//
// Returning a non-nil error will abort startup and prevent the server from
// starting.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	admin := seeding.Admin{
		Email:    appCfg.SeedAdminEmail,
		Password: appCfg.SeedAdminPassword,
	}
	if err := seeding.SeedAll(ctx, deps.MongoDatabase, admin, logger); err != nil {
		logger.Error("failed to seed default data", zap.Error(err))
		return err
	}
	return nil
}
