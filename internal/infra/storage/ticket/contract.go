package ticket

import "github.com/m04kA/Kelale-BookingPortal/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
