package infra

import (
	"errors"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"salescrm/internal/auth"
	"salescrm/internal/cache"
	"salescrm/internal/config"
	"salescrm/internal/handlers"
	"salescrm/internal/middleware"
	"salescrm/internal/repository"
	"salescrm/internal/service"
	"salescrm/internal/validation"
	"salescrm/pkg/db/transactor"
)

// App bundles the configured HTTP server with the services shared by
// background jobs.
type App struct {
	Router  *echo.Echo
	PoolSvc service.PoolService
}

// Build wires repositories, services and handlers into a ready-to-start
// application.
func Build(pgPool *pgxpool.Pool, redisClient *redis.Client, authCfg config.AuthCfg) (*App, error) {
	e := echo.New()

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var pldErr *validation.PayloadError
		if errors.As(err, &pldErr) {
			if !c.Response().Committed {
				if jsonErr := c.JSON(http.StatusBadRequest, pldErr); jsonErr != nil {
					logrus.Errorf("failed to write validation error response - %v", jsonErr)
				}
			}
			return
		}

		if _, ok := err.(*echo.HTTPError); !ok {
			logrus.Errorf("unexpected error on %s %s - %v", c.Request().Method, c.Request().URL.Path, err)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}

	echoValidator, err := buildValidator()
	if err != nil {
		return nil, err
	}
	e.Validator = echoValidator

	// transactor
	trx := transactor.NewPgxTransactor(pgPool)

	// token machinery
	jwtCfg := authCfg.JwtCfg
	rfrTokenCfg := authCfg.RefreshTokenCfg
	jwtIssuer := auth.NewJwtIssuer(jwtCfg.Issuer, jwtCfg.SigningMethod, jwtCfg.TimeToLive, jwtCfg.PrivateKey)
	jwtValidator := auth.NewJwtValidator(jwtCfg.SigningMethod, jwtCfg.PublicKey)
	rfrTokenIssuer := auth.NewRefreshTokenIssuer(rfrTokenCfg.MaxCount, rfrTokenCfg.TimeToLive)

	// middleware
	authorizeMw := middleware.Authorize(jwtValidator)

	// repositories
	userRps := repository.NewPostgresUserRepository(trx)
	departmentRps := repository.NewPostgresDepartmentRepository(trx)
	rfrTokenRps := repository.NewPostgresRefreshTokenRepository(trx)
	customerRps := repository.NewPostgresCustomerRepository(trx)
	claimRps := repository.NewPostgresClaimRecordRepository(trx)
	configRps := repository.NewPostgresSystemConfigRepository(trx)
	logRps := repository.NewPostgresSystemLogRepository(trx)
	followUpRps := repository.NewPostgresFollowUpRepository(trx)
	contractRps := repository.NewPostgresContractRepository(trx)
	paymentRps := repository.NewPostgresPaymentRepository(trx)

	// cache
	customerCache := cache.NewRedisCustomerCacheRepository(redisClient)

	// services
	authSvc := service.NewAuthService(jwtIssuer, rfrTokenIssuer, userRps, departmentRps, rfrTokenRps, logRps)
	customerSvc := service.NewCustomerService(trx, customerRps, userRps, logRps, customerCache)
	poolSvc := service.NewPoolService(trx, customerRps, claimRps, configRps, logRps, customerCache)
	followUpSvc := service.NewFollowUpService(trx, followUpRps, customerRps, logRps, customerCache)
	contractSvc := service.NewContractService(trx, contractRps, paymentRps, customerRps, logRps)
	settingsSvc := service.NewSettingsService(trx, configRps, logRps)

	// handlers
	authHandler := handlers.NewAuthHTTPHandler(authSvc)
	customerHandler := handlers.NewCustomerHTTPHandler(customerSvc)
	poolHandler := handlers.NewPoolHTTPHandler(poolSvc)
	followUpHandler := handlers.NewFollowUpHTTPHandler(followUpSvc)
	contractHandler := handlers.NewContractHTTPHandler(contractSvc)
	settingsHandler := handlers.NewSettingsHTTPHandler(settingsSvc)

	api := e.Group("/api")

	// auth
	authAPI := api.Group("/auth")
	authAPI.POST("/login", authHandler.Login)
	authAPI.POST("/refresh", authHandler.Refresh)
	authAPI.POST("/logout", authHandler.Logout)

	// customers
	customersAPI := api.Group("/customers", authorizeMw)
	customersAPI.GET("", customerHandler.GetPage)
	customersAPI.GET("/:id", customerHandler.Get)
	customersAPI.POST("", customerHandler.Post)
	customersAPI.PUT("/:id", customerHandler.Put)
	customersAPI.DELETE("/:id", customerHandler.DeleteByID)
	customersAPI.GET("/:id/followups", followUpHandler.GetByCustomer)
	customersAPI.GET("/:id/contracts", contractHandler.GetByCustomer)

	// pool
	poolAPI := api.Group("/pool", authorizeMw)
	poolAPI.GET("", poolHandler.GetPage)
	poolAPI.POST("/claim", poolHandler.Claim)
	poolAPI.POST("/return", poolHandler.Return)

	// follow-ups
	followUpsAPI := api.Group("/followups", authorizeMw)
	followUpsAPI.POST("", followUpHandler.Post)

	// contracts
	contractsAPI := api.Group("/contracts", authorizeMw)
	contractsAPI.POST("", contractHandler.Post)
	contractsAPI.GET("/:id/payments", contractHandler.GetPayments)
	contractsAPI.POST("/:id/payments", contractHandler.PostPayment)

	// settings
	settingsAPI := api.Group("/settings", authorizeMw)
	settingsAPI.GET("", settingsHandler.Get)
	settingsAPI.POST("", settingsHandler.Post)

	return &App{Router: e, PoolSvc: poolSvc}, nil
}

func buildValidator() (*validation.EchoValidator, error) {
	validate := validator.New()

	enLocale := en.New()
	translator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		translator = ut.New(enLocale, enLocale).GetFallback()
	}

	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, err
	}

	return validation.Echo(validate, translator), nil
}
