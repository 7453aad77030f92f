package repo

import (
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/pg"
	rowrepo "github.com/kaimrdth/Barbershop-Transactions-Automation/internal/repo/row-repo"
	staterepo "github.com/kaimrdth/Barbershop-Transactions-Automation/internal/repo/state-repo"
)

type Repositories struct {
	RowRepo   *rowrepo.Repository
	StateRepo *staterepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		RowRepo:   rowrepo.New(conn, txManager),
		StateRepo: staterepo.New(conn, txManager),
	}
}
