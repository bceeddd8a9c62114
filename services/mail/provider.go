package mail

import (
	"github.com/giang1412/ecom/config"
	"github.com/giang1412/ecom/services/logging"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewMailService),
)

func NewMailService(cfg *config.Config, logger *logging.Service) (*Service, error) {
	return NewService(&cfg.Mail, logger)
}
