package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/nova/internal/account"
	"github.com/shandysiswandi/nova/internal/authz"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.account.enabled") {
		if err := account.New(account.Dependency{
			Config:      a.config,
			Instrument:  a.ins,
			UUID:        a.uuid,
			Bcrypt:      a.bcrypt,
			Clock:       a.clock,
			OTP:         a.otp,
			Validator:   a.validator,
			Router:      a.router,
			DBConn:      a.dbConn,
			Idempotency: a.idemp,
			Messaging:   a.messaging,
			Goroutine:   a.goroutine,
			JWT:         a.jwt,
		}); err != nil {
			slog.Error("failed to init module account", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.authz.enabled") {
		if err := authz.New(authz.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Instrument: a.ins,
			UUID:       a.uuid,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module authz", "error", err)
			os.Exit(1)
		}
	}
}
