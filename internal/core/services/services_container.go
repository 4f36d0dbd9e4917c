package services

import (
	"log/slog"

	"github.com/wathiqah/wathiqah-backend/internal/core/ports/cacheport"
	"github.com/wathiqah/wathiqah-backend/internal/core/ports/fxsource"
	portsrepo "github.com/wathiqah/wathiqah-backend/internal/core/ports/repositories"
	portssvc "github.com/wathiqah/wathiqah-backend/internal/core/ports/services"
	"github.com/wathiqah/wathiqah-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	rateCache cacheport.RateCache,
	rateSources []fxsource.RateSource,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Contact = NewContactService(repos.ContactRepo, repos.TransactionRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.WitnessRepo, repos.ContactRepo)
	container.Promise = NewPromiseService(repos.PromiseRepo)
	container.SharedAccess = NewSharedAccessService(repos.AccessGrantRepo, repos.UserRepo, repos.TransactionRepo, repos.PromiseRepo)
	container.ExchangeRate = NewExchangeRateService(
		repos.ExchangeRateRepo,
		rateCache,
		rateSources,
		cfg.RateCacheTTL,
		logger,
	)

	return container
}

// Compile-time checks that the concrete services satisfy their facades.
var (
	_ portssvc.UserSvcFacade         = (*UserService)(nil)
	_ portssvc.ContactSvcFacade      = (*ContactService)(nil)
	_ portssvc.TransactionSvcFacade  = (*TransactionService)(nil)
	_ portssvc.PromiseSvcFacade      = (*PromiseService)(nil)
	_ portssvc.SharedAccessSvcFacade = (*SharedAccessService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)
)
