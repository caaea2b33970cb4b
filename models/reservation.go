package models

import "time"

type Reservation struct {
	ReservationID int        `json:"reservation_id" gorm:"primaryKey;autoIncrement;type:INT"`
	UserID        int        `json:"user_id" gorm:"index;not null;type:INT"`
	SpotID        int        `json:"spot_id" gorm:"index;not null;type:INT"`
	StartTime     time.Time  `json:"start_time" gorm:"type:datetime;not null"`
	EndTime       *time.Time `json:"end_time" gorm:"type:datetime;default:null"` // 進行中為 null
	TotalCost     float64    `json:"total_cost" gorm:"type:decimal(10,2);default:0.00"`
	IsActive      bool       `json:"is_active" gorm:"type:tinyint(1);default:1;index"`
	DurationHours int        `json:"duration_hours" gorm:"type:INT;default:1"`
	VehicleType   string     `json:"vehicle_type" gorm:"type:varchar(20)"`

	User User `json:"-" gorm:"foreignKey:user_id;references:UserID"`
	Spot Spot `json:"-" gorm:"foreignKey:spot_id;references:SpotID"`
}

func (Reservation) TableName() string {
	return "reservation"
}

type ReservationResponse struct {
	ReservationID int        `json:"reservation_id"`
	UserID        int        `json:"user_id"`
	SpotID        int        `json:"spot_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	TotalCost     float64    `json:"total_cost"`
	IsActive      bool       `json:"is_active"`
	DurationHours int        `json:"duration_hours"`
	VehicleType   string     `json:"vehicle_type"`
}

func (r *Reservation) ToResponse() ReservationResponse {
	return ReservationResponse{
		ReservationID: r.ReservationID,
		UserID:        r.UserID,
		SpotID:        r.SpotID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		TotalCost:     r.TotalCost,
		IsActive:      r.IsActive,
		DurationHours: r.DurationHours,
		VehicleType:   r.VehicleType,
	}
}

// BookingRequest 預約車位的輸入結構
type BookingRequest struct {
	LotID         int    `json:"lot_id" binding:"required,gt=0"`
	VehicleType   string `json:"vehicle_type" binding:"omitempty,max=20"`
	DurationHours int    `json:"duration_hours" binding:"omitempty,gte=1"`
}
