package model

// Genre is static reference data; many music entities share one genre.
type Genre struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}

func (Genre) TableName() string { return "genre" }
