package domain

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrSeatAlreadyReserved = errors.New("seat is already reserved")
	ErrHoldExpired         = errors.New("seat hold has expired")
	ErrEmptyBasket         = errors.New("basket is empty")
	ErrScreeningOverlap    = errors.New("screening overlaps with an existing screening in the same room")
	ErrScreeningDateInPast = errors.New("screening date must not be in the past")
	ErrNotPermitted        = errors.New("not permitted to access this resource")
)
