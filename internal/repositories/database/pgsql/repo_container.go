package pgsql

import (
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		EntryRepo:     newPgxEntryRepository(dbPool),
		UserRepo:      newPgxUserRepository(dbPool),
		WorkplaceRepo: newPgxWorkplaceRepository(dbPool),
	}
}
