package pages

import "github.com/Foragefoxoffice/Cotco-backend/internal/app/system/merge"

var privacyPage = Page{
	Type:    "privacy",
	Path:    "/privacypage",
	Entity:  "privacy",
	Message: "Privacy Page updated successfully",
	Sections: []merge.SectionSpec{
		{
			Key:    "privacyBanner",
			Folder: "privacy",
			Fields: []merge.Field{
				{Name: "privacyBannerMedia", Kind: merge.File},
				{Name: "privacyBannerTitle", Kind: merge.Lang},
			},
		},
		// Policy entries are text-only records.
		{Key: "privacyPolicies", Folder: "privacy", Records: &merge.Records{}},
		seoSection("privacy"),
	},
}
