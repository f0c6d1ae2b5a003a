package lead

import (
	"github.com/m04kA/PrismCRM/pkg/dbmetrics"
)

// DBExecutor общий интерфейс *sql.DB, *dbmetrics.DB и транзакций
type DBExecutor = dbmetrics.DBExecutor
