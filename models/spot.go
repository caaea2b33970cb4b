package models

// 車位狀態：Occupied 必須對應唯一一筆進行中的預約
const (
	SpotStatusAvailable = "Available"
	SpotStatusOccupied  = "Occupied"
)

type Spot struct {
	SpotID      int    `json:"spot_id" gorm:"primaryKey;autoIncrement;type:INT"`
	SlotNumber  string `json:"slot_number" gorm:"type:varchar(20);not null"` // 例如 S1、S2
	Status      string `json:"status" gorm:"type:varchar(20);default:'Available';not null"`
	VehicleType string `json:"vehicle_type" gorm:"type:varchar(20);default:'4-wheeler'"`
	LotID       int    `json:"lot_id" gorm:"index;not null;type:INT"`

	Lot          Lot           `json:"-" gorm:"foreignKey:lot_id;references:LotID"`
	Reservations []Reservation `json:"-" gorm:"foreignKey:spot_id;references:SpotID"`
}

func (Spot) TableName() string {
	return "spot"
}

type SpotResponse struct {
	SpotID      int    `json:"spot_id"`
	SlotNumber  string `json:"slot_number"`
	Status      string `json:"status"`
	VehicleType string `json:"vehicle_type"`
	LotID       int    `json:"lot_id"`
}

func (s *Spot) ToResponse() SpotResponse {
	return SpotResponse{
		SpotID:      s.SpotID,
		SlotNumber:  s.SlotNumber,
		Status:      s.Status,
		VehicleType: s.VehicleType,
		LotID:       s.LotID,
	}
}
