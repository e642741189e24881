package db

import (
	"github.com/openfun/marsha-live/common"
)

// video a single video entry
type video struct {
	common.Video
	// Pairing associated live pairing entry, if any
	Pairing []livePairing `gorm:"foreignKey:VideoID"`
}

// TableName hard code table name
func (video) TableName() string {
	return "videos"
}

// livePairing a single live pairing secret entry
type livePairing struct {
	common.LivePairing
	Video video `gorm:"constraint:OnDelete:CASCADE;foreignKey:VideoID"`
}

// TableName hard code table name
func (livePairing) TableName() string {
	return "live_pairings"
}
