package services

import "errors"

// 可由呼叫端處理的錯誤條件，處理器層用 errors.Is 轉成對應的 HTTP 狀態
var (
	ErrActiveReservationExists = errors.New("user already has an active reservation")
	ErrNoSpotAvailable         = errors.New("no available spot for this vehicle type")
	ErrCapacityConflict        = errors.New("cannot reduce spots: not enough available spots")
	ErrOccupancyConflict       = errors.New("cannot delete lot: some spots are occupied")
	ErrLotNotFound             = errors.New("lot not found")
	ErrReservationNotFound     = errors.New("reservation not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrForbidden               = errors.New("operation not permitted for this user")
	ErrEmailTaken              = errors.New("email is already in use")
	ErrInvalidCredentials      = errors.New("invalid email or password")
)
