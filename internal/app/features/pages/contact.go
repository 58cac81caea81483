package pages

import "github.com/Foragefoxoffice/Cotco-backend/internal/app/system/merge"

var contactPage = Page{
	Type:    "contact",
	Path:    "/contactpage",
	Entity:  "contact",
	Message: "Contact Page updated successfully",
	Sections: []merge.SectionSpec{
		{
			Key:    "contactBanner",
			Folder: "contact",
			Fields: []merge.Field{
				{Name: "contactBannerBg", Kind: merge.File},
				{Name: "contactBannerTitle", Kind: merge.Lang},
			},
		},
		{
			Key:    "contactForm",
			Folder: "contact",
			Fields: []merge.Field{
				{Name: "contactFormImg", Kind: merge.File},
				{Name: "contactForm", Kind: merge.Lang},
			},
		},
		{
			Key:    "contactLocation",
			Folder: "contact",
			Fields: []merge.Field{
				{Name: "contactLocationTitle", Kind: merge.Lang},
				{Name: "contactLocationDes", Kind: merge.Lang},
				{Name: "contactLocationButtonText", Kind: merge.Lang},
				{Name: "contactLocationButtonLink", Kind: merge.Text},
			},
		},
		{
			Key:    "contactHours",
			Folder: "contact",
			Fields: []merge.Field{
				{Name: "contactHoursTitle", Kind: merge.Lang},
				{Name: "contactHoursList", Kind: merge.Raw},
			},
		},
		{
			Key:    "contactMap",
			Folder: "contact",
			Fields: []merge.Field{
				{Name: "contactMapTitle", Kind: merge.Lang},
				{Name: "contactMapMap", Kind: merge.Text},
			},
		},
		seoSection("contact"),
	},
}
