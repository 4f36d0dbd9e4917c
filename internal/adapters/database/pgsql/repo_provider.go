package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/wathiqah/wathiqah-backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository into the provider
// struct consumed by the service container.
func NewRepositoryProvider(db *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         NewUserRepository(db),
		ContactRepo:      NewContactRepository(db),
		TransactionRepo:  NewTransactionRepository(db),
		WitnessRepo:      NewWitnessRepository(db),
		PromiseRepo:      NewPromiseRepository(db),
		AccessGrantRepo:  NewAccessGrantRepository(db),
		ExchangeRateRepo: NewExchangeRateRepository(db),
	}
}

// Compile-time checks that the concrete repositories satisfy their facades.
var (
	_ portsrepo.UserRepositoryFacade         = (*PgxUserRepository)(nil)
	_ portsrepo.ContactRepositoryFacade      = (*PgxContactRepository)(nil)
	_ portsrepo.TransactionRepositoryFacade  = (*PgxTransactionRepository)(nil)
	_ portsrepo.WitnessRepositoryFacade      = (*PgxWitnessRepository)(nil)
	_ portsrepo.PromiseRepositoryFacade      = (*PgxPromiseRepository)(nil)
	_ portsrepo.AccessGrantRepositoryFacade  = (*PgxAccessGrantRepository)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)
)
