package models

// Lot 定義停車場模型（來源系統稱 Mall）
type Lot struct {
	LotID      int        `json:"lot_id" gorm:"primaryKey;autoIncrement;type:INT"`
	Name       string     `json:"name" gorm:"type:varchar(100);not null"`
	Location   string     `json:"location" gorm:"type:varchar(150);not null"`
	Price      float64    `json:"price" gorm:"type:decimal(10,2);default:0.00"` // 每小時費率
	Address    string     `json:"address" gorm:"type:text"`
	Pincode    string     `json:"pincode" gorm:"type:varchar(10)"`
	TotalSlots int        `json:"total_slots" gorm:"type:INT;not null"`
	Spots      []Spot     `json:"spots" gorm:"foreignKey:lot_id;references:LotID"`
	Feedbacks  []Feedback `json:"-" gorm:"foreignKey:lot_id;references:LotID"`

	AvailableSpots int `json:"-" gorm:"-"` // transient，不存DB，用於計算剩餘位子
}

func (Lot) TableName() string {
	return "lot"
}

type LotResponse struct {
	LotID          int     `json:"lot_id"`
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	Price          float64 `json:"price"`
	Address        string  `json:"address"`
	Pincode        string  `json:"pincode"`
	TotalSlots     int     `json:"total_slots"`
	AvailableSpots int     `json:"available_spots"`
}

func (l *Lot) ToResponse() LotResponse {
	return LotResponse{
		LotID:          l.LotID,
		Name:           l.Name,
		Location:       l.Location,
		Price:          l.Price,
		Address:        l.Address,
		Pincode:        l.Pincode,
		TotalSlots:     l.TotalSlots,
		AvailableSpots: l.AvailableSpots,
	}
}

// CreateLotRequest 新增停車場的輸入結構
type CreateLotRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Location    string  `json:"location" binding:"required,max=150"`
	Price       float64 `json:"price" binding:"gte=0"`
	Address     string  `json:"address" binding:"omitempty"`
	Pincode     string  `json:"pincode" binding:"omitempty,max=10"`
	TotalSlots  int     `json:"total_slots" binding:"gte=0"`
	VehicleType string  `json:"vehicle_type" binding:"omitempty,max=20"`
}

// UpdateLotRequest 用於 PUT 更新，TotalSlots 變更會觸發車位增減
type UpdateLotRequest struct {
	Name       *string  `json:"name" binding:"omitempty,max=100"`
	Location   *string  `json:"location" binding:"omitempty,max=150"`
	Price      *float64 `json:"price" binding:"omitempty,gte=0"`
	Address    *string  `json:"address" binding:"omitempty"`
	Pincode    *string  `json:"pincode" binding:"omitempty,max=10"`
	TotalSlots *int     `json:"total_slots" binding:"omitempty,gte=0"`
}
