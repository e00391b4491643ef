package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/staffhours/internal/config"
	"github.com/jakechorley/staffhours/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg         *config.Config
	Env         string
	Employees   db.EmployeeStore
	Preferences db.PreferenceStore
	Logger      *zap.Logger
	Ctx         context.Context
}
