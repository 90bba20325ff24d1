package models

// Medicine is a stocked drug. Stock is decremented when a prescription is fulfilled.
type Medicine struct {
	BaseModel
	Name  string  `gorm:"column:nama_obat;size:255;not null" json:"nama_obat"`
	Unit  string  `gorm:"column:satuan;size:32;default:'tablet';not null" json:"satuan"`
	Price float64 `gorm:"column:harga;not null;default:0" json:"harga"`
	Stock int     `gorm:"column:stok;not null;default:0" json:"stok"`
}
