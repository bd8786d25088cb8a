package get_catalog

import "github.com/m04kA/SMC-CapacityService/internal/domain"

type CatalogProvider interface {
	Catalog() *domain.Catalog
}

type Logger interface {
	Info(format string, v ...interface{})
}
