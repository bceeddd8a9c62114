package auth

import (
	"github.com/giang1412/ecom/config"
	"github.com/giang1412/ecom/services/hashing"
	"github.com/giang1412/ecom/services/logging"
	"github.com/giang1412/ecom/services/token"
	"github.com/giang1412/ecom/services/totp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func NewAuthService(cfg *config.Config, db *gorm.DB, logger *logging.Service, hashingSvc *hashing.Service, tokenSvc *token.Service, totpSvc *totp.Service) *Service {
	return NewService(cfg, db, logger, hashingSvc, tokenSvc, totpSvc)
}

type OptionalMailer struct {
	fx.In
	Mailer Mailer `optional:"true"`
}

func WireMailer(svc *Service, opt OptionalMailer) {
	if svc != nil && opt.Mailer != nil {
		svc.SetMailer(opt.Mailer)
	}
}

var Options = fx.Options(
	fx.Provide(NewAuthService),
	fx.Invoke(WireMailer),
)
