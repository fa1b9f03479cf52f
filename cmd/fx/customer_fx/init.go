package customer_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tiffin/internal/repositories"
	"tiffin/internal/services"
)

var Module = fx.Provide(provideCustomerRepo, provideCustomerService)

func provideCustomerRepo(db *gorm.DB) repositories.ICustomerRepository {
	return repositories.NewCustomerRepository(db)
}

func provideCustomerService(customerRepo repositories.ICustomerRepository) services.CustomerServiceInterface {
	return services.NewCustomerService(customerRepo)
}
