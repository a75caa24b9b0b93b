package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Product types carried on order lines. Each type has its own attribute
// schema; localized labels via i18n.
const (
	ProductGlass         = "glass"          // γυαλί
	ProductWindowFrame   = "window_frame"   // κούφωμα
	ProductLaminatedDoor = "laminated_door" // πόρτα laminated
)

// ProductTypes lists every known product type.
var ProductTypes = []string{ProductGlass, ProductWindowFrame, ProductLaminatedDoor}

// ValidProductType reports whether t is a known product type.
func ValidProductType(t string) bool {
	for _, known := range ProductTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ProductLine is one itemized product within an order. Lines are immutable
// once created: no update or delete operation exists.
type ProductLine struct {
	ID          uint   `gorm:"primaryKey"`
	OrderCode   string `gorm:"size:20;not null;index"`
	ProductType string `gorm:"size:20;not null"`
	// Details is the rendered human-readable summary; Attributes keeps the
	// type-specific fields in structured form.
	Details    string         `gorm:"type:text"`
	Attributes datatypes.JSON `gorm:"type:json"`
	CreatedAt  time.Time
}

func (ProductLine) TableName() string { return "product_lines" }

// GlassAttributes describe a glass pane line.
type GlassAttributes struct {
	Kind        string  `json:"kind"` // clear, matte
	ThicknessMM int     `json:"thickness_mm"`
	WidthCM     float64 `json:"width_cm"`
	HeightCM    float64 `json:"height_cm"`
	Quantity    int     `json:"quantity"`
}

func (a GlassAttributes) Render() string {
	return fmt.Sprintf("Τύπος: %s, Πάχος: %dmm, %gx%gcm, Τεμ: %d",
		a.Kind, a.ThicknessMM, a.WidthCM, a.HeightCM, a.Quantity)
}

// FrameAttributes describe a window frame line.
type FrameAttributes struct {
	Material    string  `json:"material"` // aluminium, pvc
	WidthCM     float64 `json:"width_cm"`
	HeightCM    float64 `json:"height_cm"`
	Color       string  `json:"color"`
	EnergyRated bool    `json:"energy_rated"`
	Model       string  `json:"model"`
}

func (a FrameAttributes) Render() string {
	return fmt.Sprintf("%s, %gx%gcm, Χρώμα: %s, Ενεργειακό: %t, Μοντέλο: %s",
		a.Material, a.WidthCM, a.HeightCM, a.Color, a.EnergyRated, a.Model)
}

// DoorAttributes describe a laminated door line.
type DoorAttributes struct {
	WidthCM      float64 `json:"width_cm"`
	HeightCM     float64 `json:"height_cm"`
	Opening      string  `json:"opening"` // left, right, sliding
	Color        string  `json:"color"`
	FrameWidthCM float64 `json:"frame_width_cm"`
}

func (a DoorAttributes) Render() string {
	return fmt.Sprintf("%gx%gcm, %s, Χρώμα: %s, Κάσα: %gcm",
		a.WidthCM, a.HeightCM, a.Opening, a.Color, a.FrameWidthCM)
}
