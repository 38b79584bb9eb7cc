package records

import "github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"

// DBExecutor переиспользуем интерфейс из dbmetrics.
// Поддерживает *sql.DB и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
