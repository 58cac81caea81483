package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MachineCategory groups machine pages under a main category.
type MachineCategory struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	MainCategory primitive.ObjectID `bson:"main_category" json:"mainCategory"`
	Name         Lang               `bson:"name" json:"name"`
	Description  Lang               `bson:"description" json:"description"`
	Slug         string             `bson:"slug" json:"slug"`
	Icon         string             `bson:"icon,omitempty" json:"icon,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	BgImage      string             `bson:"bg_image,omitempty" json:"bgImage,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Machine section content types understood by the front end.
const (
	SectionText       = "text"
	SectionRichText   = "richtext"
	SectionImageLeft  = "imageLeft"
	SectionImageRight = "imageRight"
	SectionImage      = "image"
	SectionTable      = "table"
	SectionList       = "list"
	SectionBlocks     = "blocks"
	SectionTabs       = "tabs"
	SectionBanner     = "banner"
	SectionFeatures   = "features"
	SectionGallery    = "gallery"
	SectionSpecs      = "specs"
	SectionFAQ        = "faq"
	SectionCustom     = "custom"
	SectionButton     = "button"
)

// IsValidSectionType checks a machine section content type.
func IsValidSectionType(t string) bool {
	switch t {
	case SectionText, SectionRichText, SectionImageLeft, SectionImageRight,
		SectionImage, SectionTable, SectionList, SectionBlocks, SectionTabs,
		SectionBanner, SectionFeatures, SectionGallery, SectionSpecs,
		SectionFAQ, SectionCustom, SectionButton:
		return true
	}
	return false
}

// ListItem is one entry of a bullet/icon list section.
type ListItem struct {
	EN   string `bson:"en,omitempty" json:"en,omitempty"`
	VI   string `bson:"vi,omitempty" json:"vi,omitempty"`
	Icon string `bson:"icon,omitempty" json:"icon,omitempty"`
}

// SectionBlock is a card inside a "blocks" section.
type SectionBlock struct {
	Title       Lang   `bson:"title,omitempty" json:"title,omitempty"`
	Description Lang   `bson:"description,omitempty" json:"description,omitempty"`
	Image       string `bson:"image,omitempty" json:"image,omitempty"`
	Link        string `bson:"link,omitempty" json:"link,omitempty"`
	Order       int    `bson:"order" json:"order"`
}

// SectionTableSpec is a translated table: a header plus rows of translated cells.
type SectionTableSpec struct {
	Header Lang     `bson:"header,omitempty" json:"header,omitempty"`
	Rows   [][]Lang `bson:"rows,omitempty" json:"rows,omitempty"`
}

// SectionButton is a call-to-action button.
type SectionButtonSpec struct {
	Name    Lang   `bson:"name,omitempty" json:"name,omitempty"`
	Link    string `bson:"link,omitempty" json:"link,omitempty"`
	Align   string `bson:"align,omitempty" json:"align,omitempty"`     // left, center, right
	Variant string `bson:"variant,omitempty" json:"variant,omitempty"` // primary, outline
}

// SectionTab holds nested sections under a tab title. Nested sections are the
// same shape as MachineSectionContent, one level at a time.
type SectionTab struct {
	TabTitle Lang                    `bson:"tab_title,omitempty" json:"tabTitle,omitempty"`
	Sections []MachineSectionContent `bson:"sections,omitempty" json:"sections,omitempty"`
}

// MachineSectionContent is one rendered section of a machine page. Only the
// sub-structure matching Type is populated.
type MachineSectionContent struct {
	Type        string             `bson:"type" json:"type"`
	Title       Lang               `bson:"title,omitempty" json:"title,omitempty"`
	Description Lang               `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Order       int                `bson:"order" json:"order"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	RichText    Lang               `bson:"richtext,omitempty" json:"richtext,omitempty"`
	Table       *SectionTableSpec  `bson:"table,omitempty" json:"table,omitempty"`
	ListItems   []ListItem         `bson:"list_items,omitempty" json:"listItems,omitempty"`
	Blocks      []SectionBlock     `bson:"blocks,omitempty" json:"blocks,omitempty"`
	Button      *SectionButtonSpec `bson:"button,omitempty" json:"button,omitempty"`
	Tabs        []SectionTab       `bson:"tabs,omitempty" json:"tabs,omitempty"`
}

// MachineSection is a reusable section template stored on its own.
type MachineSection struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	MachineSectionContent `bson:",inline"`
	CreatedAt             time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt             time.Time `bson:"updated_at" json:"updatedAt"`
}

// MachineSEO is per-machine-page SEO metadata.
type MachineSEO struct {
	MetaTitle       string   `bson:"meta_title,omitempty" json:"metaTitle,omitempty"`
	MetaDescription string   `bson:"meta_description,omitempty" json:"metaDescription,omitempty"`
	Keywords        []string `bson:"keywords,omitempty" json:"keywords,omitempty"`
	OGImage         string   `bson:"og_image,omitempty" json:"ogImage,omitempty"`
}

// MachinePage is a full machine detail page built from ordered sections.
type MachinePage struct {
	ID          primitive.ObjectID      `bson:"_id,omitempty" json:"_id,omitempty"`
	Category    primitive.ObjectID      `bson:"category" json:"category"`
	Title       Lang                    `bson:"title" json:"title"`
	Description Lang                    `bson:"description" json:"description"`
	Slug        string                  `bson:"slug" json:"slug"`
	Sections    []MachineSectionContent `bson:"sections,omitempty" json:"sections,omitempty"`
	SEO         MachineSEO              `bson:"seo,omitempty" json:"seo,omitempty"`
	Banner      string                  `bson:"banner,omitempty" json:"banner,omitempty"`
	IsActive    bool                    `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time               `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time               `bson:"updated_at" json:"updatedAt"`
}
