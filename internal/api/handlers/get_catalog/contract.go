package get_catalog

import "github.com/m04kA/SMC-PetCareService/internal/service/extraservices/models"

type CatalogService interface {
	Catalog() *models.CatalogResponse
}
