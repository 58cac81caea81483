package pages

import "github.com/Foragefoxoffice/Cotco-backend/internal/app/system/merge"

var termsPage = Page{
	Type:    "terms",
	Path:    "/termspage",
	Entity:  "terms",
	Message: "Terms & Conditions updated successfully",
	Sections: []merge.SectionSpec{
		{
			Key:    "termsBanner",
			Folder: "terms",
			Fields: []merge.Field{
				{Name: "termsBannerMedia", Kind: merge.File},
				{Name: "termsBannerTitle", Kind: merge.Lang},
			},
		},
		{Key: "termsConditionsContent", Lang: true},
		seoSection("terms"),
	},
}
