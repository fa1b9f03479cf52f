package membership_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tiffin/internal/repositories"
	"tiffin/internal/services"
)

var Module = fx.Provide(
	provideMembershipRepo,
	provideMembershipService,
	providePunchService,
	provideSelectionService,
)

func provideMembershipRepo(db *gorm.DB) repositories.IMembershipRepository {
	return repositories.NewMembershipRepository(db)
}

func provideMembershipService(
	membershipRepo repositories.IMembershipRepository,
	customerRepo repositories.ICustomerRepository,
	planRepo repositories.IMealPlanRepository,
) services.MembershipServiceInterface {
	return services.NewMembershipService(membershipRepo, customerRepo, planRepo)
}

func providePunchService(membershipRepo repositories.IMembershipRepository) services.MealPunchServiceInterface {
	return services.NewMealPunchService(membershipRepo)
}

func provideSelectionService(membershipRepo repositories.IMembershipRepository) services.MealSelectionServiceInterface {
	return services.NewMealSelectionService(membershipRepo)
}
