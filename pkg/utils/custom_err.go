package utils

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")

	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrCustomerNotFound   = errors.New("customer not found")
	ErrPlanNotFound       = errors.New("meal plan not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrWeekNotFound       = errors.New("week not found in membership schedule")
	ErrDayNotFound        = errors.New("day not found in membership schedule")

	ErrInvalidPayment      = errors.New("membership can only be created with full payment")
	ErrNotActive           = errors.New("membership is not active")
	ErrInsufficientBalance = errors.New("insufficient remaining meals")
	ErrAlreadyConsumed     = errors.New("already consumed")
	ErrOutOfRange          = errors.New("date is outside the membership period")
	ErrNoMealTypes         = errors.New("no meal types provided")
	ErrAmbiguousTarget     = errors.New("provide either a date or both week and day")
	ErrNoSchedule          = errors.New("membership has no weekly schedule")
	ErrInvalidSchedule     = errors.New("invalid weekly schedule")
	ErrInvalidStatusChange = errors.New("invalid status change")
)
